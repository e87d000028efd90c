package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

const authContextKey = "joystick.auth"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

func authFrom(c *gin.Context) *joystick.AuthContext {
	if value, ok := c.Get(authContextKey); ok {
		if auth, ok := value.(*joystick.AuthContext); ok {
			return auth
		}
	}
	return nil
}

func (rs *RestfulServer) systemAuth(c *gin.Context, auth *joystick.AuthContext) *joystick.AuthContext {
	user, err := rs.Joystick.Auth.GetSystemUser(c.Request.Context())
	if err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Warn("System user not found", zap.Error(err))
		return auth
	}
	auth.UserID = user.ID
	auth.User = user
	return auth
}

// resolveAuth accepts, in order: the configured API key, a session token from
// the Authorization header or ?token=, and, when enabled, internal requests.
func (rs *RestfulServer) resolveAuth(c *gin.Context) (*joystick.AuthContext, error) {
	cfg := rs.Joystick.Config

	if key := c.GetHeader(remote.HeaderAPIKey); key != "" && cfg.APIKey != "" {
		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) == 1 {
			return rs.systemAuth(c, &joystick.AuthContext{IsAPIKey: true}), nil
		}
		return nil, joystick.ErrUnauthorized
	}

	if token := bearerToken(c); token != "" {
		user, err := rs.Joystick.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			return nil, err
		}
		return &joystick.AuthContext{UserID: user.ID, User: user}, nil
	}

	if cfg.AllowInternal && joystick.IsInternalRequest(c.Request.Header) {
		return rs.systemAuth(c, &joystick.AuthContext{IsInternal: true}), nil
	}

	return nil, joystick.ErrUnauthorized
}

func (rs *RestfulServer) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, err := rs.resolveAuth(c)
		if err != nil {
			if !errors.Is(err, joystick.ErrUnauthorized) && !errors.Is(err, joystick.ErrSessionExpired) {
				common.GetLoggerWith(common.LoggerNameRestfulServer).
					Error("Failed to authenticate request", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.Set(authContextKey, auth)
		c.Next()
	}
}
