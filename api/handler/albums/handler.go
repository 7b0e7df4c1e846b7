package albums

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/internal/access"
	svcAlbums "github.com/albumix/albumix/internal/albums"
	svcPhotos "github.com/albumix/albumix/internal/photos"
	"github.com/gin-gonic/gin"
)

// Handler 相册处理器
type Handler struct {
	svc       *svcAlbums.Service
	photosSvc *svcPhotos.Service
}

// NewHandler 创建相册处理器
func NewHandler(svc *svcAlbums.Service, photosSvc *svcPhotos.Service) *Handler {
	return &Handler{
		svc:       svc,
		photosSvc: photosSvc,
	}
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondAccessError 将所有权错误映射为 HTTP 状态。
// 他人的资源返回 403，但不区分"存在且不属于你"与具体归属，避免泄露。
func respondAccessError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, access.ErrNotFound):
		common.RespondError(c, http.StatusNotFound, "Resource not found")
		return true
	case errors.Is(err, access.ErrDenied):
		common.RespondError(c, http.StatusForbidden, "You do not have access to this resource")
		return true
	}
	return false
}
