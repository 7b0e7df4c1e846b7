package accounts

import (
	"errors"
	"net/http"

	"github.com/albumix/albumix/api/common"
	svcAccounts "github.com/albumix/albumix/internal/accounts"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RegisterHandler 创建新账户
func (h *Handler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.svc.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, svcAccounts.ErrEmailTaken) {
			common.RespondError(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	common.RespondCreated(c, newAccountDTO(account))
}
