package hooks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/hooks/mocks"
	"joystick.io/fleet-control/pkg/remote"
)

func TestSessionGuardRefreshes(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	var refreshes atomic.Int32
	api.EXPECT().RefreshAuth(gomock.Any()).DoAndReturn(func(ctx context.Context) (*remote.AuthResponse, error) {
		refreshes.Add(1)
		return &remote.AuthResponse{Token: "fresh", ExpiresAt: time.Now().Add(time.Hour)}, nil
	}).MinTimes(3)

	guard := NewSessionGuard(api, 10*time.Millisecond, notifier)
	guard.OnExpired = func(error) { t.Error("session should not expire") }
	guard.Start(context.Background())

	assert.Eventually(t, func() bool { return refreshes.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, guard.Running())

	guard.Stop()
	assert.False(t, guard.Running())
}

func TestSessionGuardExpires(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	expiredErr := &remote.APIError{Message: "token expired", Status: 401}
	gomock.InOrder(
		api.EXPECT().RefreshAuth(gomock.Any()).Return(&remote.AuthResponse{Token: "fresh"}, nil),
		api.EXPECT().RefreshAuth(gomock.Any()).Return(nil, expiredErr),
	)
	notifier.EXPECT().Error("Your session has expired, please log in again").Times(1)

	expired := make(chan error, 1)
	guard := NewSessionGuard(api, 10*time.Millisecond, notifier)
	guard.OnExpired = func(err error) { expired <- err }
	guard.Start(context.Background())

	select {
	case err := <-expired:
		assert.True(t, errors.Is(err, expiredErr))
	case <-time.After(time.Second):
		t.Fatal("session did not expire")
	}

	assert.Eventually(t, func() bool { return !guard.Running() }, time.Second, 5*time.Millisecond)
}

func TestSessionGuardRestartsAfterExpiry(t *testing.T) {
	common.SetTestLoggerNop()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	var refreshes atomic.Int32
	gomock.InOrder(
		api.EXPECT().RefreshAuth(gomock.Any()).Return(nil, &remote.APIError{Message: "token expired", Status: 401}),
		api.EXPECT().RefreshAuth(gomock.Any()).DoAndReturn(func(ctx context.Context) (*remote.AuthResponse, error) {
			refreshes.Add(1)
			return &remote.AuthResponse{Token: "fresh"}, nil
		}).MinTimes(2),
	)
	notifier.EXPECT().Error("Your session has expired, please log in again").Times(1)

	guard := NewSessionGuard(api, 10*time.Millisecond, notifier)
	restarted := make(chan struct{})
	guard.OnExpired = func(error) {
		// logging in again restarts the guard right away
		guard.Start(context.Background())
		close(restarted)
	}
	guard.Start(context.Background())
	defer guard.Stop()

	select {
	case <-restarted:
	case <-time.After(time.Second):
		t.Fatal("session did not expire")
	}

	assert.Eventually(t, func() bool { return refreshes.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, guard.Running(), "the restarted guard keeps running")
}
