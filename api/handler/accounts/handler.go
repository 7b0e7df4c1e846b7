package accounts

import (
	svcAccounts "github.com/albumix/albumix/internal/accounts"

	"github.com/albumix/albumix/database/models"
)

// Handler 账户处理器
type Handler struct {
	svc *svcAccounts.Service
}

// NewHandler 创建账户处理器
func NewHandler(svc *svcAccounts.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

// AccountDTO 账户响应数据，不包含口令哈希
type AccountDTO struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Authorities string `json:"authorities"`
	CreatedAt   int64  `json:"created_at"`
}

func newAccountDTO(account *models.Account) *AccountDTO {
	return &AccountDTO{
		ID:          account.ID,
		Email:       account.Email,
		Authorities: account.Authorities,
		CreatedAt:   account.CreatedAt.Unix(),
	}
}
