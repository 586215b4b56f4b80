package middleware

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/util"
	"coursemaster_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RevocationChecker reports whether a parsed token was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, claims *util.Claims) (bool, error)
}

// tokenFromRequest prefers the session cookie and falls back to a bearer header.
func tokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func AuthMiddleware(cfg *config.Config, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c, cfg.JWT.CookieName)
		if tokenString == "" {
			util.Error(c, 401, "Not authorized, no token")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Error(c, 401, "Not authorized, token failed")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims)
			if err != nil {
				util.LogInternalError(c, err)
				c.Abort()
				return
			}
			if isRevoked {
				util.Error(c, 401, util.ErrTokenRevoked.Error())
				c.Abort()
				return
			}
		}

		c.Set(util.UserContextKey, claims)
		c.Set(util.TokenKey, tokenString)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Error(c, 403, "Admin access only")
		c.Abort()
	}
}
