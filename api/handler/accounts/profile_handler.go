package accounts

import (
	"errors"
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	svcAccounts "github.com/albumix/albumix/internal/accounts"
	"github.com/gin-gonic/gin"
)

// ProfileHandler 获取当前账户信息
func (h *Handler) ProfileHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	account, err := h.svc.GetProfile(accountID)
	if err != nil {
		if errors.Is(err, svcAccounts.ErrAccountNotFound) {
			common.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	common.RespondSuccess(c, newAccountDTO(account))
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// UpdatePasswordHandler 修改口令，成功后吊销所有登录设备
func (h *Handler) UpdatePasswordHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.UpdatePassword(accountID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, svcAccounts.ErrWrongPassword) {
			common.RespondError(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		if errors.Is(err, svcAccounts.ErrAccountNotFound) {
			common.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	common.RespondSuccessMessage(c, "Password updated, please log in again", nil)
}

// DeleteProfileHandler 删除当前账户及其全部相册与照片
func (h *Handler) DeleteProfileHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	if err := h.svc.DeleteProfile(c.Request.Context(), accountID); err != nil {
		if errors.Is(err, svcAccounts.ErrAccountNotFound) {
			common.RespondError(c, http.StatusNotFound, "Account not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	common.RespondAccepted(c, "Account deletion accepted")
}
