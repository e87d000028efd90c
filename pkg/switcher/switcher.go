package switcher

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
)

const (
	ModeLive = "live"
	ModeOff  = "off"
	ModeAuto = "auto"
)

var (
	ErrInvalidMode     = errors.New("invalid mode")
	ErrNoConfiguration = errors.New("device has no stream configuration")
)

// PathConfigurer adds and removes media server paths. remote.MediaMTX
// implements it.
type PathConfigurer interface {
	AddPath(ctx context.Context, name string, conf map[string]any) error
	DeletePath(ctx context.Context, name string) error
}

type Switcher struct {
	Joystick *joystick.Joystick
	Paths    PathConfigurer
}

// SetMode publishes the device stream for live and withdraws it for off and
// auto.
func (s *Switcher) SetMode(ctx context.Context, deviceID string, mode string) error {
	logger := common.GetLoggerWith(common.LoggerNameSwitcher,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice))

	device, err := s.Joystick.Device.GetDevice(ctx, deviceID)
	if err != nil {
		return err
	}

	name := device.StreamName()

	switch mode {
	case ModeLive:
		if name == "" {
			return fmt.Errorf("device %s: %w", deviceID, ErrNoConfiguration)
		}
		logger.Info("Adding stream path", zap.String("device", deviceID), zap.String("path", name))
		return s.Paths.AddPath(ctx, name, map[string]any(device.Configuration))
	case ModeOff, ModeAuto:
		if name == "" {
			return fmt.Errorf("device %s: %w", deviceID, ErrNoConfiguration)
		}
		logger.Info("Deleting stream path", zap.String("device", deviceID), zap.String("path", name), zap.String("mode", mode))
		return s.Paths.DeletePath(ctx, name)
	default:
		return fmt.Errorf("%s: %w", mode, ErrInvalidMode)
	}
}
