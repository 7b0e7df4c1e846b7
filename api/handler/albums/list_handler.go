package albums

import (
	"net/http"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/api/middleware"
	"github.com/gin-gonic/gin"
)

// ListAlbumsHandler 列出当前账户的全部相册
func (h *Handler) ListAlbumsHandler(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountIDKey)

	views, err := h.svc.List(c.Request.Context(), accountID)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to list albums")
		return
	}

	common.RespondSuccess(c, views)
}
