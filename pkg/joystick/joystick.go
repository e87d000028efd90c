package joystick

//go:generate mockgen -source=joystick.go -destination=mocks/mock_joystick.go -package=mocks

import (
	"context"
	"io"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
)

type IDevice interface {
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetDeviceActions(ctx context.Context, deviceID string) ([]string, error)
	UpdateMode(ctx context.Context, deviceID string, mode string) error
	UpdateStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error
	SyncStatus(ctx context.Context, deviceID string) (models.DeviceStatus, error)
	Ping(ctx context.Context, deviceID string, expected string) (bool, error)
}

type IAction interface {
	RunAction(ctx context.Context, req RunRequest) (*RunResult, error)
	GetActionSchema(ctx context.Context, deviceID string, action string) (*ActionSchema, error)
}

type IPermission interface {
	GetIsPermitted(ctx context.Context, userID string, action string) bool
	GetIsPermittedMany(ctx context.Context, userID string, actions []string) map[string]bool
	GetIsRoutePermitted(ctx context.Context, userID string, route string) bool
}

type INotification interface {
	SendNotification(ctx context.Context, senderID string, req NotificationRequest) (*NotificationResult, error)
	GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error)
}

type IActionLog interface {
	GetActionLogs(ctx context.Context, filter ActionLogFilter) ([]models.ActionLog, error)
	ExportActionLogs(ctx context.Context, filter ActionLogFilter, w io.Writer) error
}

type IAuth interface {
	Login(ctx context.Context, email string, password string) (*models.Session, error)
	Refresh(ctx context.Context, token string) (*models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetSystemUser(ctx context.Context) (*models.User, error)
}

// Executor runs rendered commands either on the joystick host or on a device.
type Executor interface {
	RunLocal(ctx context.Context, command string) (string, error)
	RunOnDevice(ctx context.Context, conn Connection, command string) (string, error)
	Ping(ctx context.Context, host string) (string, error)
}

// EventPublisher fans out run and notification events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// StreamPaths reports the paths currently known to the media server.
type StreamPaths interface {
	ListPaths(ctx context.Context) ([]remote.Path, error)
}

type Joystick struct {
	Db       db.DB
	Config   *common.Config
	Executor Executor
	Events   EventPublisher
	Stream   StreamPaths
	Hub      *NotificationHub

	Device       IDevice
	Action       IAction
	Permission   IPermission
	Notification INotification
	ActionLog    IActionLog
	Auth         IAuth
}

type ServiceOpts struct {
	Device       IDevice
	Action       IAction
	Permission   IPermission
	Notification INotification
	ActionLog    IActionLog
	Auth         IAuth
}

// New wires a Joystick with its own service implementations, a shell
// executor and no event fan-out. Callers replace parts with WithServices or by
// assigning the exported fields.
func New(database *db.DB, cfg *common.Config) *Joystick {
	j := &Joystick{
		Db:       *database,
		Config:   cfg,
		Executor: NewShellExecutor(),
		Events:   NopPublisher{},
		Hub:      NewNotificationHub(),
	}
	return j.WithServices(ServiceOpts{
		Device:       j.GetIDevice(),
		Action:       j.GetIAction(),
		Permission:   j.GetIPermission(),
		Notification: j.GetINotification(),
		ActionLog:    j.GetIActionLog(),
		Auth:         j.GetIAuth(),
	})
}

func (j *Joystick) WithServices(opts ServiceOpts) *Joystick {
	if opts.Device != nil {
		j.Device = opts.Device
	}
	if opts.Action != nil {
		j.Action = opts.Action
	}
	if opts.Permission != nil {
		j.Permission = opts.Permission
	}
	if opts.Notification != nil {
		j.Notification = opts.Notification
	}
	if opts.ActionLog != nil {
		j.ActionLog = opts.ActionLog
	}
	if opts.Auth != nil {
		j.Auth = opts.Auth
	}
	return j
}
