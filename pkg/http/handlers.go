package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func statusFor(err error) int {
	switch {
	case errors.Is(err, joystick.ErrDeviceNotFound),
		errors.Is(err, joystick.ErrActionNotFound),
		errors.Is(err, joystick.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, joystick.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, joystick.ErrParametersRequired),
		errors.Is(err, joystick.ErrInvalidParameters),
		errors.Is(err, joystick.ErrInvalidNotification):
		return http.StatusBadRequest
	case errors.Is(err, joystick.ErrUnauthorized),
		errors.Is(err, joystick.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	body := gin.H{"success": false, "error": err.Error()}
	var paramErr *joystick.ParamError
	if errors.As(err, &paramErr) {
		body["issues"] = paramErr.Issues
	}
	c.JSON(statusFor(err), body)
}

func (rs *RestfulServer) RunAction(c *gin.Context) {
	deviceID := c.Param("device")
	action := c.Param("action")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.JSON(http.StatusTooManyRequests, remote.RunResponse{Success: false, Error: "rate limit exceeded"})
		return
	}

	var params map[string]any
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, remote.RunResponse{Success: false, Error: err.Error()})
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &params); err != nil {
			c.JSON(http.StatusBadRequest, remote.RunResponse{Success: false, Error: "body must be a JSON object"})
			return
		}
	}

	result, err := rs.Joystick.Action.RunAction(c.Request.Context(), joystick.RunRequest{
		DeviceID:   deviceID,
		Action:     action,
		Parameters: params,
		Auth:       authFrom(c),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, remote.RunResponse{Success: true, Output: result.Output})
}

func (rs *RestfulServer) Ping(c *gin.Context) {
	deviceID := c.Param("device")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	ok, err := rs.Joystick.Device.Ping(c.Request.Context(), deviceID, c.Query("result"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ok)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	devices, err := rs.Joystick.Device.ListDevices(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	device, err := rs.Joystick.Device.GetDevice(c.Request.Context(), c.Param("device"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) GetDeviceActions(c *gin.Context) {
	actions, err := rs.Joystick.Device.GetDeviceActions(c.Request.Context(), c.Param("device"))
	if err != nil {
		fail(c, err)
		return
	}
	if actions == nil {
		actions = []string{}
	}
	c.JSON(http.StatusOK, remote.DeviceActionsResponse{Actions: actions})
}

func (rs *RestfulServer) GetActionSchema(c *gin.Context) {
	schema, err := rs.Joystick.Action.GetActionSchema(c.Request.Context(), c.Param("device"), c.Param("action"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, remote.ActionSchema{
		Action:  schema.Action,
		Command: schema.Command,
		Target:  string(schema.Target),
		Params:  json.RawMessage(schema.Params),
	})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid limiter request", "issues": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) CheckPermissions(c *gin.Context) {
	auth := authFrom(c)
	actions := c.QueryArray("action")

	permissions := rs.Joystick.Permission.GetIsPermittedMany(c.Request.Context(), auth.UserID, actions)
	c.JSON(http.StatusOK, remote.PermissionsResponse{Permissions: permissions})
}

func (rs *RestfulServer) CheckRoute(c *gin.Context) {
	auth := authFrom(c)
	route := c.Param("route")

	permitted := rs.Joystick.Permission.GetIsRoutePermitted(c.Request.Context(), auth.UserID, route)
	c.JSON(http.StatusOK, remote.RouteResponse{Route: route, Permitted: permitted})
}

type NotificationRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	UserId      string `json:"userId"`
	DeviceId    string `json:"deviceId"`
	Dismissible bool   `json:"dismissible"`
}

var notificationRequestSchema = z.Struct(z.Shape{
	"type":        z.String().Default("info"),
	"title":       z.String().Required(),
	"message":     z.String().Required(),
	"userId":      z.String(),
	"deviceId":    z.String(),
	"dismissible": z.Bool().Default(true),
})

func (rs *RestfulServer) SendNotification(c *gin.Context) {
	var req NotificationRequest
	if err := notificationRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "title and message are required", "issues": err})
		return
	}

	sender := "system"
	if auth := authFrom(c); auth != nil && auth.UserID != "" {
		sender = auth.UserID
	}

	result, err := rs.Joystick.Notification.SendNotification(c.Request.Context(), sender, joystick.NotificationRequest{
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		UserID:      req.UserId,
		DeviceID:    req.DeviceId,
		Dismissible: &req.Dismissible,
	})
	if err != nil {
		c.JSON(statusFor(err), remote.NotificationResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, remote.NotificationResponse{
		Success:         true,
		NotificationID:  result.NotificationID,
		ClientsNotified: result.ClientsNotified,
	})
}

type NotificationsQuery struct {
	Limit int `json:"limit"`
}

var notificationsQuerySchema = z.Struct(z.Shape{
	"limit": z.Int(),
})

func (rs *RestfulServer) GetNotifications(c *gin.Context) {
	var query NotificationsQuery
	if err := notificationsQuerySchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid query", "issues": err})
		return
	}

	notifications, err := rs.Joystick.Notification.GetUserNotifications(c.Request.Context(), authFrom(c).UserID, query.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (rs *RestfulServer) NotificationSocket(c *gin.Context) {
	rs.Joystick.Hub.ServeHTTP(c.Writer, c.Request)
}

type ActionLogsQuery struct {
	Device string    `json:"device"`
	User   string    `json:"user"`
	Since  time.Time `json:"since"`
	Limit  int       `json:"limit"`
}

var actionLogsQuerySchema = z.Struct(z.Shape{
	"device": z.String(),
	"user":   z.String(),
	"since":  z.Time(),
	"limit":  z.Int(),
})

func (rs *RestfulServer) actionLogFilter(c *gin.Context) (joystick.ActionLogFilter, bool) {
	var query ActionLogsQuery
	if err := actionLogsQuerySchema.Parse(zhttp.Request(c.Request), &query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid query", "issues": err})
		return joystick.ActionLogFilter{}, false
	}
	return joystick.ActionLogFilter{
		DeviceID: query.Device,
		UserID:   query.User,
		Since:    query.Since,
		Limit:    query.Limit,
	}, true
}

func (rs *RestfulServer) GetActionLogs(c *gin.Context) {
	filter, ok := rs.actionLogFilter(c)
	if !ok {
		return
	}

	logs, err := rs.Joystick.ActionLog.GetActionLogs(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (rs *RestfulServer) ExportActionLogs(c *gin.Context) {
	filter, ok := rs.actionLogFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := rs.Joystick.ActionLog.ExportActionLogs(c.Request.Context(), filter, &buf); err != nil {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Failed to export action logs", zap.Error(err))
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="action-logs.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (rs *RestfulServer) GetCPSI(c *gin.Context) {
	c.String(http.StatusOK, rs.Telemetry.CPSI())
}

func (rs *RestfulServer) GetBattery(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Telemetry.Battery())
}

func (rs *RestfulServer) GetGPS(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Telemetry.GPS())
}

func (rs *RestfulServer) GetIMU(c *gin.Context) {
	c.JSON(http.StatusOK, rs.Telemetry.IMU())
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	version := rs.Version
	if version == "" {
		version = "unknown"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "joystick",
		"uptime":    time.Since(rs.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"memory": gin.H{
			"alloc":      mem.Alloc,
			"heapInUse":  mem.HeapInuse,
			"goroutines": runtime.NumGoroutine(),
		},
		"version": version,
	})
}
