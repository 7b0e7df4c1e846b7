package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

// DeleteAlbumHandler 删除相册并级联删除其照片。
// 元数据删除成功即返回 202，产物清理尽力而为。
func (h *Handler) DeleteAlbumHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), accountID, albumID); err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete album")
		return
	}

	common.RespondAccepted(c, "Album deletion accepted")
}
