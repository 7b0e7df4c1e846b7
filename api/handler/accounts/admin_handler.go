package accounts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albumix/albumix/api/common"
	svcAccounts "github.com/albumix/albumix/internal/accounts"
	"github.com/gin-gonic/gin"
)

// ListAccountsHandler 管理员查看全部账户
func (h *Handler) ListAccountsHandler(c *gin.Context) {
	accounts, err := h.svc.ListAccounts()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	dtos := make([]*AccountDTO, len(accounts))
	for i, account := range accounts {
		dtos[i] = newAccountDTO(account)
	}

	common.RespondSuccess(c, dtos)
}

type updateAuthoritiesRequest struct {
	Authorities string `json:"authorities"`
}

// UpdateAuthoritiesHandler 管理员修改账户权限
func (h *Handler) UpdateAuthoritiesHandler(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req updateAuthoritiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.svc.UpdateAuthorities(uint(targetID), req.Authorities)
	if err != nil {
		if errors.Is(err, svcAccounts.ErrAccountNotFound) {
			common.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update authorities")
		return
	}

	common.RespondSuccess(c, newAccountDTO(account))
}
