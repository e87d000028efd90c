package joystick_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/models"
	"joystick.io/fleet-control/pkg/remote"
	_ "joystick.io/fleet-control/pkg/testing"
)

func lastActionLog(t *testing.T, j *joystick.Joystick, deviceID string) models.ActionLog {
	var entry models.ActionLog
	require.NoError(t, j.Db.Conn.Where("device_id = ?", deviceID).Order("started_at DESC").First(&entry).Error)
	return entry
}

func TestRunActionSetModeAsAdmin(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, map[string]any{"host": "10.0.0.2", "user": "pi"})
	bindRun(t, j, findAction(t, j, "set-mode"), model, "mode $mode --device $device", models.RunTargetDevice)
	admin := findUser(t, j, j.Config.AdminUserEmail)

	m.Executor.EXPECT().
		RunOnDevice(gomock.Any(), joystick.Connection{Host: "10.0.0.2", User: "pi"}, "mode live --device "+device.ID).
		Return("ok\n", nil)
	m.Events.EXPECT().
		Publish(gomock.Any(), joystick.RunTopic(device.ID), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload any) error {
			event := payload.(joystick.RunEvent)
			assert.True(t, event.Success)
			assert.Equal(t, "set-mode", event.Action)
			assert.Equal(t, admin.ID, event.User)
			return nil
		})

	result, err := j.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID:   device.ID,
		Action:     "set-mode",
		Parameters: map[string]any{"mode": "live"},
		Auth:       &joystick.AuthContext{UserID: admin.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", result.Output)
	assert.Equal(t, models.RunTargetDevice, result.Target)
	assert.NotEmpty(t, result.LogID)

	stored, err := j.Device.GetDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, "live", stored.Mode)

	entry := lastActionLog(t, j, device.ID)
	assert.Equal(t, result.LogID, entry.ID)
	assert.True(t, entry.Success)
	assert.Equal(t, admin.ID, entry.UserID)
	assert.Equal(t, "mode live --device "+device.ID, entry.Command)
	assert.JSONEq(t, `{"mode":"live"}`, string(entry.Parameters))
}

func TestRunActionSetModeRefreshesStatus(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()
	j.Stream = m.Stream

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, map[string]any{"host": "10.0.0.2"})
	bindRun(t, j, findAction(t, j, "set-mode"), model, "mode $mode", models.RunTargetDevice)

	m.Executor.EXPECT().RunOnDevice(gomock.Any(), gomock.Any(), "mode live").Return("", nil)
	m.Stream.EXPECT().ListPaths(gomock.Any()).Return([]remote.Path{{Name: device.StreamName(), Ready: false}}, nil)
	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := j.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID:   device.ID,
		Action:     "set-mode",
		Parameters: map[string]any{"mode": "live"},
		Auth:       &joystick.AuthContext{IsAPIKey: true},
	})
	require.NoError(t, err)

	stored, err := j.Device.GetDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusWaiting, stored.Status)
}

func TestRunActionDeniedForUserLevel(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, map[string]any{"host": "10.0.0.2"})
	bindRun(t, j, findAction(t, j, "set-mode"), model, "mode $mode", models.RunTargetDevice)
	user := findUser(t, j, db.DefaultUserEmail)

	// the executor must not be reached
	m.Executor.EXPECT().RunOnDevice(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	m.Events.EXPECT().
		Publish(gomock.Any(), joystick.RunTopic(device.ID), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload any) error {
			assert.False(t, payload.(joystick.RunEvent).Success)
			return nil
		})

	_, err := j.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID:   device.ID,
		Action:     "set-mode",
		Parameters: map[string]any{"mode": "live"},
		Auth:       &joystick.AuthContext{UserID: user.ID},
	})
	assert.ErrorIs(t, err, joystick.ErrNotPermitted)

	entry := lastActionLog(t, j, device.ID)
	assert.False(t, entry.Success)
	assert.Contains(t, string(entry.Result), "not permitted")

	stored, err := j.Device.GetDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Mode)
}

func TestRunActionWithoutAuthIsDenied(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, true)
	defer ctrl.Finish()

	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)
	bindRun(t, j, findAction(t, j, "get-mode"), model, "mode", models.RunTargetLocal)

	m.Permission.EXPECT().GetIsPermitted(gomock.Any(), "", "get-mode").Return(false)
	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := j.Action.RunAction(context.Background(), joystick.RunRequest{DeviceID: device.ID, Action: "get-mode"})
	assert.ErrorIs(t, err, joystick.ErrNotPermitted)
}

func TestRunActionValidatesParameters(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, true)
	defer ctrl.Finish()

	ctx := context.Background()
	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)
	bindRun(t, j, findAction(t, j, "set-fps"), model, "fps $fps", models.RunTargetLocal)

	m.Permission.EXPECT().GetIsPermitted(gomock.Any(), "u1", "set-fps").Return(true).Times(3)
	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	auth := &joystick.AuthContext{UserID: "u1"}

	_, err := j.Action.RunAction(ctx, joystick.RunRequest{DeviceID: device.ID, Action: "set-fps", Auth: auth})
	assert.ErrorIs(t, err, joystick.ErrParametersRequired)

	_, err = j.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID: device.ID, Action: "set-fps", Auth: auth,
		Parameters: map[string]any{"fps": 12.5},
	})
	assert.ErrorIs(t, err, joystick.ErrInvalidParameters)
	var paramErr *joystick.ParamError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "fps", paramErr.Issues[0].Field)

	m.Executor.EXPECT().RunLocal(gomock.Any(), "fps 25").Return("25", nil)
	result, err := j.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID: device.ID, Action: "set-fps", Auth: auth,
		Parameters: map[string]any{"fps": float64(25)},
	})
	require.NoError(t, err)
	assert.Equal(t, "fps 25", result.Command)
	assert.Equal(t, models.RunTargetLocal, result.Target)
}

func TestRunActionPrefersRunSchema(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)
	action := seedAction(t, j, `{"properties":{"level":{"type":"string"}},"required":["level"]}`)
	run := bindRun(t, j, action, model, "level $level", models.RunTargetLocal)
	require.NoError(t, j.Db.Conn.Model(run).
		Update("parameters", datatypes.JSON(`{"properties":{"level":{"type":"integer"}},"required":["level"]}`)).Error)

	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	system := &joystick.AuthContext{IsInternal: true}

	_, err := j.Action.RunAction(context.Background(), joystick.RunRequest{
		DeviceID: device.ID, Action: action.Name, Auth: system,
		Parameters: map[string]any{"level": "high"},
	})
	assert.ErrorIs(t, err, joystick.ErrInvalidParameters)

	m.Executor.EXPECT().RunLocal(gomock.Any(), "level 3").Return("", nil)
	_, err = j.Action.RunAction(context.Background(), joystick.RunRequest{
		DeviceID: device.ID, Action: action.Name, Auth: system,
		Parameters: map[string]any{"level": float64(3)},
	})
	assert.NoError(t, err)
}

func TestRunActionLookupFailures(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	system := &joystick.AuthContext{IsAPIKey: true}
	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := j.Action.RunAction(ctx, joystick.RunRequest{DeviceID: uuid.NewString(), Action: "get-mode", Auth: system})
	assert.ErrorIs(t, err, joystick.ErrDeviceNotFound)

	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)

	_, err = j.Action.RunAction(ctx, joystick.RunRequest{DeviceID: device.ID, Action: "no-such-action", Auth: system})
	assert.ErrorIs(t, err, joystick.ErrActionNotFound)

	_, err = j.Action.RunAction(ctx, joystick.RunRequest{DeviceID: device.ID, Action: "get-mode", Auth: system})
	assert.ErrorIs(t, err, joystick.ErrRunNotFound)
	assert.Contains(t, err.Error(), model.Name)

	// unbound action is still logged against the device
	entry := lastActionLog(t, j, device.ID)
	assert.False(t, entry.Success)
}

func TestRunActionCommandFailure(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, m := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	model := seedModel(t, j)
	device := seedDevice(t, j, model, map[string]any{"host": "10.0.0.2"})
	bindRun(t, j, findAction(t, j, "get-mode"), model, "mode", models.RunTargetDevice)

	m.Executor.EXPECT().RunOnDevice(gomock.Any(), gomock.Any(), "mode").
		Return("", &joystick.CommandError{Command: "mode", Stderr: "mode: not found\n", Err: errors.New("exit status 127")})
	m.Events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker offline"))

	_, err := j.Action.RunAction(context.Background(), joystick.RunRequest{
		DeviceID: device.ID, Action: "get-mode", Auth: &joystick.AuthContext{IsAPIKey: true},
	})
	require.Error(t, err)
	assert.Equal(t, "mode: not found", err.Error())

	entry := lastActionLog(t, j, device.ID)
	assert.False(t, entry.Success)
	assert.Equal(t, "mode", entry.Command)
	assert.JSONEq(t, `{"error":"mode: not found"}`, string(entry.Result))
}

func TestGetActionSchema(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, j, _ := GetMockJoystickWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	model := seedModel(t, j)
	device := seedDevice(t, j, model, nil)
	bindRun(t, j, findAction(t, j, "set-fps"), model, "fps $fps", models.RunTargetLocal)

	schema, err := j.Action.GetActionSchema(context.Background(), device.ID, "set-fps")
	require.NoError(t, err)
	assert.Equal(t, "set-fps", schema.Action)
	assert.Equal(t, "fps $fps", schema.Command)
	assert.Equal(t, models.RunTargetLocal, schema.Target)

	parsed, err := joystick.ParseParamSchema(schema.Params)
	require.NoError(t, err)
	assert.Equal(t, []string{"fps"}, parsed.Required)

	_, err = j.Action.GetActionSchema(context.Background(), device.ID, "get-fps")
	assert.ErrorIs(t, err, joystick.ErrRunNotFound)
}
