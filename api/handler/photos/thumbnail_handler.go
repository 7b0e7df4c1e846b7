package photos

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/gin-gonic/gin"
)

// 公开缩略图缓存 7 天
const thumbnailCacheControl = "public, max-age=604800"

// PublicThumbnailHandler 公开访问缩略图，无需认证。
// 远程物化的照片重定向到图床 URL，本地的直接回源文件。
func (h *Handler) PublicThumbnailHandler(c *gin.Context) {
	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photo_id")
	if !ok {
		return
	}

	result, err := h.svc.Thumbnail(c.Request.Context(), albumID, photoID)
	if err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to load thumbnail")
		return
	}

	c.Header("Cache-Control", thumbnailCacheControl)

	if result.RedirectURL != "" {
		c.Redirect(http.StatusFound, result.RedirectURL)
		return
	}

	c.Data(http.StatusOK, result.ContentType, result.Data)
}
