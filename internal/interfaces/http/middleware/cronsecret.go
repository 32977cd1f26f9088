package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolms/backend/internal/domain/identity"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
)

// CronSecretHeader carries the shared secret set by the external cron trigger
const CronSecretHeader = "X-Cron-Secret"

// CronTriggerKey marks requests authenticated via the cron secret
const CronTriggerKey = "cron_trigger"

// CronSecretAuth allows only requests carrying the configured cron secret.
// An empty configured secret disables the endpoint entirely.
func CronSecretAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cronSecretMatches(c, secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Invalid cron secret"))
			return
		}
		c.Set(CronTriggerKey, true)
		c.Next()
	}
}

// CronOrAdmin allows requests that either carry the configured cron secret or
// a valid admin bearer token. Used on endpoints shared by the external
// scheduler and the admin UI.
func CronOrAdmin(secret string, jwtCfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cronSecretMatches(c, secret) {
			c.Set(CronTriggerKey, true)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		claims, err := jwtCfg.JWTService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			abortUnauthorized(c, jwtCfg, err, "Token validation failed")
			return
		}

		if jwtCfg.TokenBlacklist != nil && claims.ID != "" {
			if revoked, err := jwtCfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrCodeTokenInvalid, "Token has been revoked"))
				return
			}
		}

		if claims.Role != string(identity.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin role required"))
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTEmailKey, claims.Email)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

// IsCronTriggered reports whether the request was authenticated via cron secret
func IsCronTriggered(c *gin.Context) bool {
	return c.GetBool(CronTriggerKey)
}

func cronSecretMatches(c *gin.Context, secret string) bool {
	if secret == "" {
		return false
	}
	provided := c.GetHeader(CronSecretHeader)
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}
