package hooks

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/remote"
)

const DefaultRefreshInterval = 2 * time.Minute

var errSessionExpired = errors.New("session expired")

// SessionGuard keeps the client session alive by refreshing it on a fixed
// interval. OnExpired is called once when a refresh fails and the guard stops.
type SessionGuard struct {
	API       API
	Notifier  Notifier
	OnExpired func(error)

	poller  *Poller[*remote.AuthResponse]
	expired atomic.Bool
}

func NewSessionGuard(api API, interval time.Duration, notifier Notifier) *SessionGuard {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if notifier == nil {
		notifier = LogNotifier{}
	}

	g := &SessionGuard{API: api, Notifier: notifier}
	g.poller = NewPoller(interval, g.refresh, g.handle)
	return g
}

func (g *SessionGuard) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameHooks,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySession),
	)
}

func (g *SessionGuard) refresh(ctx context.Context) (*remote.AuthResponse, error) {
	if g.expired.Load() {
		return nil, errSessionExpired
	}
	return g.API.RefreshAuth(ctx)
}

func (g *SessionGuard) handle(auth *remote.AuthResponse, err error) {
	if err == nil {
		g.logger().Debug("Session refreshed", zap.Time("expiresAt", auth.ExpiresAt))
		return
	}
	if !g.expired.CompareAndSwap(false, true) {
		return
	}

	g.logger().Warn("Session refresh failed", zap.Error(err))
	g.Notifier.Error("Your session has expired, please log in again")

	// the poll goroutine is the caller, so cancel without waiting for it
	g.poller.halt()
	if g.OnExpired != nil {
		g.OnExpired(err)
	}
}

// Start refreshes immediately and then every interval until Stop.
func (g *SessionGuard) Start(ctx context.Context) {
	g.expired.Store(false)
	g.poller.Start(ctx)
}

func (g *SessionGuard) Stop() {
	g.poller.Stop()
}

func (g *SessionGuard) Running() bool {
	return g.poller.Running()
}
