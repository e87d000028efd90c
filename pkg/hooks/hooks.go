package hooks

//go:generate mockgen -source=hooks.go -destination=mocks/mock_hooks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

const DefaultTTL = 5 * time.Minute

// API is the part of the joystick API the hooks call. remote.JoystickClient
// implements it.
type API interface {
	DeviceActions(ctx context.Context, deviceID string) ([]string, error)
	ActionSchema(ctx context.Context, deviceID, action string) (*remote.ActionSchema, error)
	IsPermitted(ctx context.Context, actions ...string) (map[string]bool, error)
	IsRoutePermitted(ctx context.Context, route string) (bool, error)
	RunAction(ctx context.Context, deviceID, action string, params map[string]any) (string, error)
	Ping(ctx context.Context, deviceID string) (bool, error)
	RefreshAuth(ctx context.Context) (*remote.AuthResponse, error)
	// Subject names the caller that permission answers belong to.
	Subject() string
}

// Notifier shows short user facing messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the hooks logger.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	common.GetLoggerWith(common.LoggerNameHooks).Info(message)
}

func (LogNotifier) Error(message string) {
	common.GetLoggerWith(common.LoggerNameHooks).Warn(message)
}

// Hooks wraps API calls with caching, safe fallbacks and notifications.
type Hooks struct {
	API      API
	Cache    Cache
	Notifier Notifier
	TTL      time.Duration
}

func New(api API, cache Cache, notifier Notifier) *Hooks {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Hooks{API: api, Cache: cache, Notifier: notifier, TTL: DefaultTTL}
}

func deviceKey(deviceID string) string {
	return "device:" + deviceID + ":"
}

// Permission answers depend on the caller, so their keys carry the subject
// and a cache shared between users never crosses answers.
func permissionKey(subject, action string) string {
	return "user:" + subject + ":permission:" + action
}

func routeKey(subject, route string) string {
	return "user:" + subject + ":route:" + route
}

func (h *Hooks) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameHooks,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryCache),
	)
}

// cached returns the cached value for key or fetches, stores and returns it.
// Cache failures only cost a fetch.
func cached[T any](ctx context.Context, h *Hooks, key string, fetch func(context.Context) (T, error)) (T, error) {
	var value T
	err := h.Cache.Get(ctx, key, &value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrMiss) {
		h.logger().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err = fetch(ctx)
	if err != nil {
		return value, err
	}
	if err := h.Cache.Set(ctx, key, value, h.TTL); err != nil {
		h.logger().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// DeviceActions lists the action names bound to the device, or none when the
// API cannot be reached.
func (h *Hooks) DeviceActions(ctx context.Context, deviceID string) []string {
	if deviceID == "" {
		return []string{}
	}
	actions, err := cached(ctx, h, deviceKey(deviceID)+"actions", func(ctx context.Context) ([]string, error) {
		return h.API.DeviceActions(ctx, deviceID)
	})
	if err != nil || actions == nil {
		if err != nil {
			h.logger().Debug("Failed to fetch device actions", zap.String("device", deviceID), zap.Error(err))
		}
		return []string{}
	}
	return actions
}

// IsSupported reports whether the device has every one of actions.
func (h *Hooks) IsSupported(ctx context.Context, deviceID string, actions ...string) bool {
	available := h.DeviceActions(ctx, deviceID)
	for _, action := range actions {
		if !slices.Contains(available, action) {
			return false
		}
	}
	return true
}

func (h *Hooks) IsPermitted(ctx context.Context, action string) bool {
	return h.IsPermittedMany(ctx, []string{action})[action]
}

// IsPermittedMany answers for each action, false for any it cannot resolve.
func (h *Hooks) IsPermittedMany(ctx context.Context, actions []string) map[string]bool {
	subject := h.API.Subject()
	result := make(map[string]bool, len(actions))
	var missing []string
	for _, action := range actions {
		var permitted bool
		if err := h.Cache.Get(ctx, permissionKey(subject, action), &permitted); err == nil {
			result[action] = permitted
			continue
		}
		missing = append(missing, action)
	}
	if len(missing) == 0 {
		return result
	}

	fetched, err := h.API.IsPermitted(ctx, missing...)
	if err != nil {
		h.logger().Debug("Failed to fetch permissions", zap.Strings("actions", missing), zap.Error(err))
	}
	for _, action := range missing {
		permitted := fetched[action]
		result[action] = permitted
		if err == nil {
			if err := h.Cache.Set(ctx, permissionKey(subject, action), permitted, h.TTL); err != nil {
				h.logger().Warn("Cache write failed", zap.String("action", action), zap.Error(err))
			}
		}
	}
	return result
}

func (h *Hooks) IsRoutePermitted(ctx context.Context, route string) bool {
	permitted, err := cached(ctx, h, routeKey(h.API.Subject(), route), func(ctx context.Context) (bool, error) {
		return h.API.IsRoutePermitted(ctx, route)
	})
	return err == nil && permitted
}

func (h *Hooks) ActionSchema(ctx context.Context, deviceID, action string) (*remote.ActionSchema, error) {
	schema, err := cached(ctx, h, deviceKey(deviceID)+"action:"+action, func(ctx context.Context) (*remote.ActionSchema, error) {
		return h.API.ActionSchema(ctx, deviceID, action)
	})
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// ActionValidator builds the parameter validator for an action on a device.
// It is nil when the action takes no parameters.
func (h *Hooks) ActionValidator(ctx context.Context, deviceID, action string) (*joystick.ParamValidator, error) {
	schema, err := h.ActionSchema(ctx, deviceID, action)
	if err != nil {
		return nil, err
	}
	parsed, err := joystick.ParseParamSchema(schema.Params)
	if err != nil || parsed == nil {
		return nil, err
	}
	return joystick.BuildParamValidator(parsed), nil
}

// RunAction runs an action, tells the user how it went and drops the cached
// queries of the device.
func (h *Hooks) RunAction(ctx context.Context, deviceID, action string, params map[string]any) (string, error) {
	output, err := h.API.RunAction(ctx, deviceID, action, params)
	if err != nil {
		message := err.Error()
		if message == "" {
			message = "Failed to execute action"
		}
		h.Notifier.Error(message)
		return "", err
	}

	h.Notifier.Success(fmt.Sprintf("Successfully sent %s to %s", action, deviceID))
	if err := h.Cache.InvalidatePrefix(ctx, deviceKey(deviceID)); err != nil {
		h.logger().Warn("Cache invalidation failed", zap.String("device", deviceID), zap.Error(err))
	}
	return output, nil
}

type PingResult struct {
	Success      bool          `json:"success"`
	Timestamp    time.Time     `json:"timestamp"`
	ResponseTime time.Duration `json:"responseTime"`
	Error        string        `json:"error,omitempty"`
}

// Ping never fails; an unreachable device or API is an unsuccessful result.
func (h *Hooks) Ping(ctx context.Context, deviceID string) PingResult {
	started := time.Now()
	ok, err := h.API.Ping(ctx, deviceID)
	finished := time.Now()

	result := PingResult{Success: ok && err == nil, Timestamp: finished, ResponseTime: finished.Sub(started)}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// PingPoller pings the device every interval once started.
func (h *Hooks) PingPoller(deviceID string, interval time.Duration, onResult func(PingResult)) *Poller[PingResult] {
	return NewPoller(interval, func(ctx context.Context) (PingResult, error) {
		return h.Ping(ctx, deviceID), nil
	}, func(result PingResult, _ error) {
		if onResult != nil {
			onResult(result)
		}
	})
}
