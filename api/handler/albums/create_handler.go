package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

type createAlbumRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// CreateAlbumHandler 创建相册
func (h *Handler) CreateAlbumHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	var req createAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.Create(accountID, req.Name, req.Description)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to create album")
		return
	}

	common.RespondCreated(c, view)
}
