package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

type updateAlbumRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// UpdateAlbumHandler 更新相册名称与描述
func (h *Handler) UpdateAlbumHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}

	var req updateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.Update(accountID, albumID, req.Name, req.Description)
	if err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to update album")
		return
	}

	common.RespondSuccess(c, view)
}
