package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DeviceStatus string

const (
	DeviceStatusOff     DeviceStatus = "off"
	DeviceStatusOn      DeviceStatus = "on"
	DeviceStatusWaiting DeviceStatus = "waiting"
)

type RunTarget string

const (
	RunTargetLocal  RunTarget = "local"
	RunTargetDevice RunTarget = "device"
)

type NotificationType string

const (
	NotificationTypeInfo      NotificationType = "info"
	NotificationTypeSuccess   NotificationType = "success"
	NotificationTypeWarning   NotificationType = "warning"
	NotificationTypeError     NotificationType = "error"
	NotificationTypeEmergency NotificationType = "emergency"
)

var NotificationTypes = []string{
	string(NotificationTypeInfo),
	string(NotificationTypeSuccess),
	string(NotificationTypeWarning),
	string(NotificationTypeError),
	string(NotificationTypeEmergency),
}

// Record carries the system fields every collection shares.
type Record struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	Created time.Time `gorm:"autoCreateTime" json:"created"`
	Updated time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type DeviceAutomation struct {
	MinutesOn  int `json:"minutesOn"`
	MinutesOff int `json:"minutesOff"`
}

// Model is a device type: what it can run and how the UI presents it.
type Model struct {
	Record
	Name           string         `gorm:"uniqueIndex" json:"name"`
	Stream         string         `json:"stream"`
	IsAudio        bool           `json:"isAudio"`
	ModeConfigs    datatypes.JSON `json:"modeConfigs"`
	StreamQuality  datatypes.JSON `json:"streamQuality"`
	TempLevels     datatypes.JSON `json:"tempLevels"`
	MessagePresets datatypes.JSON `json:"messagePresets"`
}

type Device struct {
	Record
	Name          string            `json:"name"`
	ModelID       string            `gorm:"index" json:"model"`
	Model         *Model            `gorm:"foreignKey:ModelID" json:"expand,omitempty"`
	Mode          string            `json:"mode"`
	Status        DeviceStatus      `gorm:"type:varchar(10);default:off" json:"status"`
	Auto          bool              `json:"auto"`
	Hide          bool              `json:"hide"`
	Configuration datatypes.JSONMap `json:"configuration"`
	Information   datatypes.JSONMap `json:"information"`
	Automation    *DeviceAutomation `gorm:"serializer:json" json:"automation,omitempty"`
}

// StreamName is the MediaMTX path the device publishes to.
func (d *Device) StreamName() string {
	if d.Configuration == nil {
		return ""
	}
	name, _ := d.Configuration["name"].(string)
	return name
}

type Action struct {
	Record
	Name   string         `gorm:"uniqueIndex" json:"name"`
	Params datatypes.JSON `json:"params"`
}

// Run binds an action to a model: the command template and where it runs.
type Run struct {
	Record
	ActionID   string         `gorm:"index:idx_run_action_model,unique" json:"action"`
	Action     *Action        `gorm:"foreignKey:ActionID" json:"-"`
	ModelID    string         `gorm:"index:idx_run_action_model,unique" json:"device"`
	Command    string         `json:"command"`
	Target     RunTarget      `gorm:"type:varchar(10);default:device" json:"target"`
	Parameters datatypes.JSON `json:"parameters"`
}

func (Run) TableName() string {
	return "run"
}

type Level struct {
	Record
	Name string `gorm:"uniqueIndex" json:"name"`
}

// Rule is the allow-list of one level.
type Rule struct {
	Record
	LevelID string   `gorm:"uniqueIndex" json:"allow"`
	Actions []Action `gorm:"many2many:rule_actions" json:"action"`
}

type User struct {
	Record
	Email        string `gorm:"uniqueIndex" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	LevelID      string `gorm:"index" json:"level"`
}

type Session struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"index" json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Created   time.Time `gorm:"autoCreateTime" json:"created"`
}

// Permission grants a named route to a set of users.
type Permission struct {
	Record
	Name  string `gorm:"uniqueIndex" json:"name"`
	Users []User `gorm:"many2many:permission_users" json:"users"`
}

type Notification struct {
	Record
	Type        NotificationType `gorm:"type:varchar(10)" json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	DeviceID    *string          `gorm:"index" json:"device,omitempty"`
	UserID      string           `gorm:"index" json:"user"`
	Dismissible bool             `json:"dismissible"`
	Metadata    datatypes.JSON   `json:"metadata,omitempty"`
}

// ActionLog is the record of one command dispatched to a device.
type ActionLog struct {
	Record
	UserID     string         `gorm:"index" json:"user"`
	DeviceID   string         `gorm:"index" json:"device"`
	ActionID   string         `gorm:"index" json:"action"`
	Command    string         `json:"command"`
	Target     RunTarget      `gorm:"type:varchar(10)" json:"target"`
	Parameters datatypes.JSON `json:"parameters"`
	Result     datatypes.JSON `json:"result"`
	Success    bool           `json:"success"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}

type MigrationRecord struct {
	ID      string    `gorm:"primaryKey"`
	Applied time.Time `gorm:"autoCreateTime"`
}

func (MigrationRecord) TableName() string {
	return "migrations"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Model{}, &Device{}, &Action{}, &Run{}, &Level{}, &Rule{}, &User{},
		&Session{}, &Permission{}, &Notification{}, &ActionLog{}, &MigrationRecord{},
	}
}
