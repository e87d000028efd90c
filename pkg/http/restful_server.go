package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"joystick.io/fleet-control/pkg/joystick"
)

type RestfulServer struct {
	Server           *gin.Engine
	Joystick         *joystick.Joystick
	RateLimiterStore *joystick.RateLimiterStore
	Telemetry        *joystick.Telemetry
	Version          string

	started time.Time
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.started = time.Now()
	if rs.Telemetry == nil {
		rs.Telemetry = joystick.NewTelemetry(time.Now().UnixNano())
	}

	api := rs.Server.Group("/api")

	api.GET("/health", rs.HealthCheck)
	api.POST("/auth/login", rs.Login)
	api.POST("/auth/refresh", rs.Refresh)

	authed := api.Group("", rs.Authenticate())
	{
		authed.POST("/run/:device/:action", rs.RunAction)
		authed.GET("/ping/:device", rs.Ping)

		authed.GET("/devices", rs.ListDevices)
		authed.GET("/devices/:device", rs.GetDevice)
		authed.GET("/devices/:device/actions", rs.GetDeviceActions)
		authed.GET("/devices/:device/actions/:action", rs.GetActionSchema)
		authed.POST("/devices/:device/limiter", rs.PostLimiter)

		authed.GET("/permissions/check", rs.CheckPermissions)
		authed.GET("/routes/:route", rs.CheckRoute)

		authed.POST("/notifications/send", rs.SendNotification)
		authed.GET("/notifications", rs.GetNotifications)
		authed.GET("/ws/notifications", rs.NotificationSocket)

		authed.GET("/logs", rs.GetActionLogs)
		authed.GET("/logs/export", rs.ExportActionLogs)

		authed.GET("/cpsi", rs.GetCPSI)
		authed.GET("/battery", rs.GetBattery)
		authed.GET("/gps", rs.GetGPS)
		authed.GET("/imu", rs.GetIMU)
	}
}
