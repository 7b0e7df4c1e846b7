package photos

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

// DeletePhotoHandler 删除单张照片。
// 元数据行先删，产物清理尽力而为，成功返回 202。
func (h *Handler) DeletePhotoHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photo_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), accountID, albumID, photoID); err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to delete photo")
		return
	}

	common.RespondAccepted(c, "Photo deletion accepted")
}
