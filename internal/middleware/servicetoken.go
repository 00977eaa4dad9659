package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gvone/gvone-api/internal/config"
	"github.com/gvone/gvone-api/internal/pkg/response"
)

// ServiceToken guards internal routes (ingest trigger, report audit
// listing) with an HS256 bearer token signed with the shared service
// secret. End-user authentication is not this middleware's job.
func ServiceToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Service token required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.ServiceTokenSecret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid service token")
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims.GetSubject(); sub != "" {
				c.Set("caller", sub)
			}
		}

		c.Next()
	}
}
