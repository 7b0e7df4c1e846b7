package middleware

import (
	"net/http"
	"strings"

	"github.com/albumix/albumix/api/common"
	"github.com/albumix/albumix/database/models"
	"github.com/albumix/albumix/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ContextAccountIDKey   = "account_id"
	ContextEmailKey       = "email"
	ContextAuthoritiesKey = "authorities"
)

// CombinedAuth 校验 Bearer JWT 并注入账号上下文
func CombinedAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespondError(c, http.StatusUnauthorized, "No Authorization request header")
			c.Abort()
			return
		}

		// 解析 Scheme 和 Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			common.RespondError(c, http.StatusBadRequest, "Authorization field format error")
			c.Abort()
			return
		}

		if parts[0] != "Bearer" {
			common.RespondError(c, http.StatusUnauthorized, "Unsupported authentication scheme")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(parts[1])
		if err != nil {
			common.RespondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.Type != "access" {
			common.RespondError(c, http.StatusUnauthorized, "token is not an access token")
			c.Abort()
			return
		}

		if claims.AccountID == 0 {
			common.RespondError(c, http.StatusUnauthorized, "account_id not found in token claims")
			c.Abort()
			return
		}

		authorities := claims.Authorities
		if authorities == "" {
			authorities = models.AuthorityUser
		}

		c.Set(ContextAccountIDKey, claims.AccountID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextAuthoritiesKey, authorities)

		c.Next()
	}
}
