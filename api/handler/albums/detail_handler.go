package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

// GetAlbumDetailHandler 获取单个相册及其照片
func (h *Handler) GetAlbumDetailHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}

	view, err := h.svc.Get(accountID, albumID)
	if err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to get album")
		return
	}

	common.RespondSuccess(c, view)
}
