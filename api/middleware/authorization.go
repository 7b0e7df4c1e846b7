package middleware

import (
	"net/http"
	"strings"

	"github.com/albumix/albumix/api/common"
	"github.com/gin-gonic/gin"
)

// RequireAuthority 检查账号是否具有指定的权限之一。
// 权限以空格分隔存储在上下文中（如 "USER ADMIN"）。
func RequireAuthority(allowedAuthorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authoritiesVal, exists := c.Get(ContextAuthoritiesKey)
		if !exists {
			common.RespondError(c, http.StatusForbidden, "Access denied. Authority information not found.")
			c.Abort()
			return
		}

		authorities, ok := authoritiesVal.(string)
		if !ok {
			common.RespondError(c, http.StatusInternalServerError, "Internal error: invalid authorities type in context.")
			c.Abort()
			return
		}

		held := strings.Fields(authorities)
		for _, allowed := range allowedAuthorities {
			for _, h := range held {
				if h == allowed {
					c.Next()
					return
				}
			}
		}

		common.RespondError(c, http.StatusForbidden, "Access denied. You do not have the required authority to access this resource.")
		c.Abort()
	}
}
