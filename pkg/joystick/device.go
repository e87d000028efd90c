package joystick

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
)

const DefaultPingResult = "1 packets received"

func (j *Joystick) deviceLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice),
	)
}

func (j *Joystick) getDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	var device models.Device
	err := j.Db.Conn.WithContext(ctx).Preload("Model").First(&device, "id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("device %s: %w", deviceID, ErrDeviceNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (j *Joystick) listDevices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	err := j.Db.Conn.WithContext(ctx).Preload("Model").Order("name").Find(&devices).Error
	return devices, err
}

// getDeviceActions lists the actions bound to the device's model.
func (j *Joystick) getDeviceActions(ctx context.Context, deviceID string) ([]string, error) {
	device, err := j.getDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	var names []string
	err = j.Db.Conn.WithContext(ctx).
		Table("run").
		Joins("JOIN actions ON actions.id = run.action_id").
		Where("run.model_id = ?", device.ModelID).
		Order("actions.name").
		Pluck("actions.name", &names).Error
	return names, err
}

func (j *Joystick) updateDevice(ctx context.Context, deviceID string, column string, value any) error {
	result := j.Db.Conn.WithContext(ctx).Model(&models.Device{}).Where("id = ?", deviceID).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("device %s: %w", deviceID, ErrDeviceNotFound)
	}
	return nil
}

func (j *Joystick) updateMode(ctx context.Context, deviceID string, mode string) error {
	if err := j.updateDevice(ctx, deviceID, "mode", mode); err != nil {
		return err
	}
	j.deviceLogger().Info("Device mode updated", zap.String("device", deviceID), zap.String("mode", mode))
	return nil
}

func (j *Joystick) updateStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error {
	return j.updateDevice(ctx, deviceID, "status", status)
}

// syncStatus reads the media server path list and stores the device status it
// implies.
func (j *Joystick) syncStatus(ctx context.Context, deviceID string) (models.DeviceStatus, error) {
	if j.Stream == nil {
		return "", errors.New("no stream api configured")
	}

	device, err := j.getDevice(ctx, deviceID)
	if err != nil {
		return "", err
	}

	paths, err := j.Stream.ListPaths(ctx)
	if err != nil {
		return "", err
	}

	status := remote.PathStatus(paths, device.StreamName())
	j.deviceLogger().Info("Updating device status",
		zap.String("device", deviceID),
		zap.String("stream", device.StreamName()),
		zap.String("status", string(status)),
	)
	return status, j.updateStatus(ctx, deviceID, status)
}

// ping reports whether one ICMP echo to the device host came back. A failing
// ping is a result, not an error.
func (j *Joystick) ping(ctx context.Context, deviceID string, expected string) (bool, error) {
	device, err := j.getDevice(ctx, deviceID)
	if err != nil {
		return false, err
	}

	if expected == "" {
		expected = DefaultPingResult
	}

	host := infoString(device.Information, "host")
	if host == "" {
		return false, nil
	}

	output, err := j.Executor.Ping(ctx, host)
	if err != nil {
		j.deviceLogger().Debug("Ping failed", zap.String("device", deviceID), zap.Error(err))
		return false, nil
	}
	return strings.Contains(output, expected), nil
}

type IDeviceImpl struct {
	joystick *Joystick
}

func (id *IDeviceImpl) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	return id.joystick.getDevice(ctx, deviceID)
}

func (id *IDeviceImpl) ListDevices(ctx context.Context) ([]models.Device, error) {
	return id.joystick.listDevices(ctx)
}

func (id *IDeviceImpl) GetDeviceActions(ctx context.Context, deviceID string) ([]string, error) {
	return id.joystick.getDeviceActions(ctx, deviceID)
}

func (id *IDeviceImpl) UpdateMode(ctx context.Context, deviceID string, mode string) error {
	return id.joystick.updateMode(ctx, deviceID, mode)
}

func (id *IDeviceImpl) UpdateStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error {
	return id.joystick.updateStatus(ctx, deviceID, status)
}

func (id *IDeviceImpl) SyncStatus(ctx context.Context, deviceID string) (models.DeviceStatus, error) {
	return id.joystick.syncStatus(ctx, deviceID)
}

func (id *IDeviceImpl) Ping(ctx context.Context, deviceID string, expected string) (bool, error) {
	return id.joystick.ping(ctx, deviceID, expected)
}

func (j *Joystick) GetIDevice() IDevice {
	return &IDeviceImpl{joystick: j}
}
