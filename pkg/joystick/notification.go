package joystick

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const (
	NotificationTopic       = "joystick/notifications"
	NotificationMessageType = "notification"

	defaultNotificationLimit = 50
)

type NotificationRequest struct {
	Type        string
	Title       string
	Message     string
	UserID      string
	DeviceID    string
	Dismissible *bool
}

type NotificationPayload struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	UserID      string `json:"userId,omitempty"`
	DeviceID    string `json:"deviceId,omitempty"`
	Dismissible bool   `json:"dismissible"`
}

// NotificationMessage is the frame written to notification sockets.
type NotificationMessage struct {
	Type    string              `json:"type"`
	Payload NotificationPayload `json:"payload"`
}

type NotificationResult struct {
	NotificationID  string
	ClientsNotified int
}

func (j *Joystick) notificationLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryNotification),
	)
}

func (j *Joystick) sendNotification(ctx context.Context, senderID string, req NotificationRequest) (*NotificationResult, error) {
	logger := j.notificationLogger()

	if req.Title == "" || req.Message == "" {
		return nil, fmt.Errorf("title and message are required: %w", ErrInvalidNotification)
	}
	if req.Type == "" {
		req.Type = string(models.NotificationTypeInfo)
	}
	if !slices.Contains(models.NotificationTypes, req.Type) {
		return nil, fmt.Errorf("type %q: %w", req.Type, ErrInvalidNotification)
	}

	payload := NotificationPayload{
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Timestamp:   time.Now().UnixMilli(),
		UserID:      req.UserID,
		DeviceID:    req.DeviceID,
		Dismissible: req.Dismissible == nil || *req.Dismissible,
	}
	if payload.UserID == "" {
		payload.UserID = senderID
	}

	logger.Info("notification",
		zap.String("sender", senderID),
		zap.String("type", payload.Type),
		zap.String("title", payload.Title),
		zap.String("device", payload.DeviceID),
	)

	record := models.Notification{
		Type:        models.NotificationType(payload.Type),
		Title:       payload.Title,
		Message:     payload.Message,
		UserID:      payload.UserID,
		Dismissible: payload.Dismissible,
	}
	if payload.DeviceID != "" {
		if _, err := j.getDevice(ctx, payload.DeviceID); err != nil {
			logger.Warn("Device not found, notification will be saved without device relation",
				zap.String("device", payload.DeviceID))
		} else {
			record.DeviceID = &payload.DeviceID
		}
	}

	if err := j.Db.Conn.WithContext(ctx).Create(&record).Error; err != nil {
		logger.Error("Failed to send notification", zap.Error(err))
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}
	logger.Debug("Notification persisted to database", zap.String("id", record.ID))
	payload.ID = record.ID

	clients := 0
	if j.Hub != nil {
		n, err := j.Hub.Broadcast(NotificationMessage{Type: NotificationMessageType, Payload: payload})
		if err != nil {
			logger.Error("Failed to broadcast notification", zap.Error(err))
		}
		clients = n
	}
	j.publish(ctx, NotificationTopic, payload)

	return &NotificationResult{NotificationID: record.ID, ClientsNotified: clients}, nil
}

func (j *Joystick) getUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	var notifications []models.Notification
	err := j.Db.Conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

type INotificationImpl struct {
	joystick *Joystick
}

func (in *INotificationImpl) SendNotification(ctx context.Context, senderID string, req NotificationRequest) (*NotificationResult, error) {
	return in.joystick.sendNotification(ctx, senderID, req)
}

func (in *INotificationImpl) GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return in.joystick.getUserNotifications(ctx, userID, limit)
}

func (j *Joystick) GetINotification() INotification {
	return &INotificationImpl{joystick: j}
}
