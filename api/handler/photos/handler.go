package photos

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/internal/access"
	svcPhotos "github.com/albumix/albumix/internal/photos"
	"github.com/gin-gonic/gin"
)

// Handler 照片处理器
type Handler struct {
	svc *svcPhotos.Service
}

// NewHandler 创建照片处理器
func NewHandler(svc *svcPhotos.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		common.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

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
