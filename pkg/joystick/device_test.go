package joystick_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
	_ "joystick.io/fleet-control/pkg/testing"
)

func TestGetDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, _ := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, map[string]any{"host": "10.0.0.2"})

	got, err := j.Device.GetDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, device.Name, got.Name)
	require.NotNil(t, got.Model)
	assert.Equal(t, model.Name, got.Model.Name)
	assert.Equal(t, models.DeviceStatusOff, got.Status)

	_, err = j.Device.GetDevice(ctx, uuid.NewString())
	assert.ErrorIs(t, err, joystick.ErrDeviceNotFound)
}

func TestGetDeviceActions(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, _ := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)
	bindRun(t, j, findAction(t, j, "set-mode"), model, "mode $mode", models.RunTargetDevice)
	bindRun(t, j, findAction(t, j, "get-mode"), model, "mode", models.RunTargetDevice)

	actions, err := j.Device.GetDeviceActions(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"get-mode", "set-mode"}, actions)

	other := seedDevice(t, j, seedModel(t, j), nil)
	actions, err = j.Device.GetDeviceActions(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestUpdateModeAndStatus(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, _ := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	device := seedDevice(t, j, seedModel(t, j), nil)

	require.NoError(t, j.Device.UpdateMode(ctx, device.ID, "live"))
	require.NoError(t, j.Device.UpdateStatus(ctx, device.ID, models.DeviceStatusWaiting))

	got, err := j.Device.GetDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, "live", got.Mode)
	assert.Equal(t, models.DeviceStatusWaiting, got.Status)

	err = j.Device.UpdateMode(ctx, uuid.NewString(), "live")
	assert.ErrorIs(t, err, joystick.ErrDeviceNotFound)
}

func TestSyncStatus(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	device := seedDevice(t, j, seedModel(t, j), nil)

	_, err := j.Device.SyncStatus(ctx, device.ID)
	assert.Error(t, err, "sync without a stream api should fail")

	j.Stream = m.Stream
	stream := device.StreamName()

	tests := []struct {
		paths []remote.Path
		want  models.DeviceStatus
	}{
		{[]remote.Path{{Name: stream, Ready: true}}, models.DeviceStatusOn},
		{[]remote.Path{{Name: "other", Ready: true}, {Name: stream}}, models.DeviceStatusWaiting},
		{nil, models.DeviceStatusOff},
	}
	for _, tt := range tests {
		m.Stream.EXPECT().ListPaths(gomock.Any()).Return(tt.paths, nil)

		status, err := j.Device.SyncStatus(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, status)

		got, err := j.Device.GetDevice(ctx, device.ID)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Status)
	}

	m.Stream.EXPECT().ListPaths(gomock.Any()).Return(nil, errors.New("mediamtx down"))
	_, err = j.Device.SyncStatus(ctx, device.ID)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	device := seedDevice(t, j, seedModel(t, j), map[string]any{"host": "10.0.0.2"})

	m.Executor.EXPECT().Ping(gomock.Any(), "10.0.0.2").
		Return("1 packets transmitted, 1 packets received, 0% packet loss", nil)
	ok, err := j.Device.Ping(ctx, device.ID, "")
	require.NoError(t, err)
	assert.True(t, ok)

	m.Executor.EXPECT().Ping(gomock.Any(), "10.0.0.2").
		Return("1 packets transmitted, 0 packets received", errors.New("exit status 1"))
	ok, err = j.Device.Ping(ctx, device.ID, "")
	require.NoError(t, err)
	assert.False(t, ok)

	m.Executor.EXPECT().Ping(gomock.Any(), "10.0.0.2").Return("64 bytes from 10.0.0.2", nil)
	ok, err = j.Device.Ping(ctx, device.ID, "64 bytes")
	require.NoError(t, err)
	assert.True(t, ok)

	noHost := seedDevice(t, j, seedModel(t, j), nil)
	ok, err = j.Device.Ping(ctx, noHost.ID, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = j.Device.Ping(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, joystick.ErrDeviceNotFound)
}

func TestActiveConnection(t *testing.T) {
	d := device("d1", map[string]any{
		"host":            "10.0.0.2",
		"user":            "pi",
		"phone":           "+100",
		"secondSlotHost":  "10.0.1.2",
		"secondSlotPhone": "+200",
	})

	conn := joystick.ActiveConnection(d)
	assert.Equal(t, "10.0.0.2", conn.Host)
	assert.Equal(t, "+100", conn.Phone)

	d.Information["activeSlot"] = joystick.SlotSecondary
	conn = joystick.ActiveConnection(d)
	assert.Equal(t, "10.0.1.2", conn.Host)
	assert.Equal(t, "+200", conn.Phone)
	assert.Equal(t, "pi", conn.User)

	delete(d.Information, "secondSlotHost")
	conn = joystick.ActiveConnection(d)
	assert.Equal(t, "10.0.0.2", conn.Host)
}
