package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

// UploadPhotosHandler 批量上传照片。
// 单个文件的失败不影响批次中其他文件：响应同时携带成功与失败列表，
// 全部成功返回 201，存在失败返回 207。
func (h *Handler) UploadPhotosHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	albumID, ok := parseIDParam(c, "album_id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		common.RespondError(c, http.StatusBadRequest, "At least one file is required under the 'files' key")
		return
	}

	result, err := h.photosSvc.Upload(c.Request.Context(), accountID, albumID, files)
	if err != nil {
		if respondAccessError(c, err) {
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to process uploads")
		return
	}

	if result.Partial() {
		common.Respond(c, http.StatusMultiStatus, "partial", "Some files could not be uploaded", result)
		return
	}

	common.RespondCreated(c, result)
}
