package switcher

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
)

type Server struct {
	Server   *gin.Engine
	Switcher *Switcher
}

func (s *Server) Setup() {
	s.Server.Use(func(c *gin.Context) {
		common.GetLoggerWith(common.LoggerNameSwitcher).
			Info("Incoming request", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Next()
	})

	s.Server.POST("/api/mode/:device/:mode", s.SetMode)
}

func (s *Server) SetMode(c *gin.Context) {
	err := s.Switcher.SetMode(c.Request.Context(), c.Param("device"), c.Param("mode"))
	if err != nil {
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, joystick.ErrDeviceNotFound):
			code = http.StatusNotFound
		case errors.Is(err, ErrInvalidMode), errors.Is(err, ErrNoConfiguration):
			code = http.StatusBadRequest
		}
		common.GetLoggerWith(common.LoggerNameSwitcher).
			Error("Request error occurred", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(code, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
