package whisper

import (
	"errors"
	"net/http"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
)

type Server struct {
	Server  *gin.Engine
	Whisper *Whisper
}

type SendRequest struct {
	PhoneNumbers []string `json:"phoneNumbers"`
	Message      string   `json:"message"`
}

var sendRequestSchema = z.Struct(z.Shape{
	"phoneNumbers": z.Slice(z.String()).Required(),
	"message":      z.String().Required(),
})

func (s *Server) Setup() {
	s.Server.Use(func(c *gin.Context) {
		common.GetLoggerWith(common.LoggerNameWhisper).
			Info("Incoming request", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Next()
	})

	s.Server.POST("/api/send-sms", s.SendSMS)
	s.Server.POST("/api/receive-sms", s.ReceiveSMS)
	s.Server.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) SendSMS(c *gin.Context) {
	var req SendRequest
	if issues := sendRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil || len(req.PhoneNumbers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone numbers and message are required"})
		return
	}

	reply, err := s.Whisper.SendAndWait(c.Request.Context(), req.PhoneNumbers, req.Message)
	if err != nil {
		common.GetLoggerWith(common.LoggerNameWhisper).Error("Failed to send SMS", zap.Error(err))
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrInvalidMessage):
			code = http.StatusBadRequest
		case errors.Is(err, ErrReplyTimeout):
			code = http.StatusGatewayTimeout
		}
		c.JSON(code, gin.H{"error": "Failed to send SMS: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (s *Server) ReceiveSMS(c *gin.Context) {
	var event WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	s.Whisper.Receive(event)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
