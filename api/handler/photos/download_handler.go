package photos

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	svcPhotos "github.com/albumix/albumix/internal/photos"
	"github.com/gin-gonic/gin"
)

// DownloadPhotoHandler 下载原始照片文件
func (h *Handler) DownloadPhotoHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photo_id")
	if !ok {
		return
	}

	result, err := h.svc.Download(c.Request.Context(), accountID, albumID, photoID)
	if err != nil {
		if respondAccessError(c, err) {
			return
		}
		if errors.Is(err, svcPhotos.ErrArtifactMissing) {
			common.RespondError(c, http.StatusNotFound, "Photo file is missing")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to download photo")
		return
	}
	defer result.File.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", result.OriginalFilename),
	}
	c.DataFromReader(http.StatusOK, result.Size, "application/octet-stream", result.File, extraHeaders)
}
