package baker

import (
	"errors"
	"net/http"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

type Server struct {
	Server *gin.Engine
	Baker  *Baker
}

type AutomationRequest struct {
	MinutesOn  int `json:"minutesOn"`
	MinutesOff int `json:"minutesOff"`
}

var automationRequestSchema = z.Struct(z.Shape{
	"minutesOn":  z.Int().Required(),
	"minutesOff": z.Int().Required(),
})

func (s *Server) Setup() {
	s.Server.Use(func(c *gin.Context) {
		common.GetLoggerWith(common.LoggerNameBaker).
			Info("Incoming request", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Next()
	})

	jobs := s.Server.Group("/jobs")
	jobs.POST("/:device", s.CreateJob)
	jobs.POST("/:device/start", s.StartJob)
	jobs.POST("/:device/stop", s.StopJob)
	jobs.GET("/:device", s.GetJobStatus)
	jobs.DELETE("/:device", s.DeleteJob)
	jobs.GET("/:device/next", s.GetNextExecution)
}

func fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrJobNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrInvalidAutomation):
		code = http.StatusBadRequest
	}
	common.GetLoggerWith(common.LoggerNameBaker).
		Error("Request failed", zap.String("device", c.Param("device")), zap.Error(err))
	c.JSON(code, gin.H{"success": false, "error": err.Error()})
}

func (s *Server) CreateJob(c *gin.Context) {
	device := c.Param("device")

	var req AutomationRequest
	if issues := automationRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ErrInvalidAutomation.Error(), "issues": issues})
		return
	}

	err := s.Baker.CreateJob(device, models.DeviceAutomation{MinutesOn: req.MinutesOn, MinutesOff: req.MinutesOff})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) StartJob(c *gin.Context) {
	if err := s.Baker.StartJob(c.Param("device")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) StopJob(c *gin.Context) {
	if err := s.Baker.StopJob(c.Param("device")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetJobStatus(c *gin.Context) {
	status, err := s.Baker.GetJobStatus(c.Param("device"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (s *Server) DeleteJob(c *gin.Context) {
	if err := s.Baker.DeleteJob(c.Param("device")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetNextExecution(c *gin.Context) {
	device := c.Param("device")

	next, err := s.Baker.NextExecution(device)
	if err != nil {
		fail(c, err)
		return
	}
	status, err := s.Baker.GetJobStatus(device)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"nextExecution": next.Format(time.RFC3339),
		"status":        status,
	})
}
