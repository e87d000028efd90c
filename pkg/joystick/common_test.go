package joystick_test

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/joystick/mocks"
	"joystick.io/fleet-control/pkg/models"
)

type joystickMocks struct {
	Executor   *mocks.MockExecutor
	Events     *mocks.MockEventPublisher
	Stream     *mocks.MockStreamPaths
	Device     *mocks.MockIDevice
	Permission *mocks.MockIPermission
}

// GetMockJoystickWithMemorySqliteDialector returns a Joystick on the shared
// in-memory database. Executor and Events are always mocks; Stream is left nil
// until a test assigns m.Stream.
func GetMockJoystickWithMemorySqliteDialector(t *testing.T, useMockIDevice, useMockIPermission bool) (
	*gomock.Controller,
	*joystick.Joystick,
	*joystickMocks,
) {
	ctrl := gomock.NewController(t)

	m := &joystickMocks{
		Executor:   mocks.NewMockExecutor(ctrl),
		Events:     mocks.NewMockEventPublisher(ctrl),
		Stream:     mocks.NewMockStreamPaths(ctrl),
		Device:     mocks.NewMockIDevice(ctrl),
		Permission: mocks.NewMockIPermission(ctrl),
	}

	cfg, err := common.LoadConfig()
	require.NoError(t, err)

	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	j := joystick.New(dbInstance, cfg)
	j.Executor = m.Executor
	j.Events = m.Events

	opts := joystick.ServiceOpts{}
	if useMockIDevice {
		opts.Device = m.Device
	}
	if useMockIPermission {
		opts.Permission = m.Permission
	}
	j.WithServices(opts)

	return ctrl, j, m
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func seedModel(t *testing.T, j *joystick.Joystick) *models.Model {
	model := &models.Model{Name: "model-" + uuid.NewString()}
	require.NoError(t, j.Db.Conn.Create(model).Error)
	return model
}

func seedDevice(t *testing.T, j *joystick.Joystick, model *models.Model, info map[string]any) *models.Device {
	device := &models.Device{
		Name:          "device-" + uuid.NewString(),
		ModelID:       model.ID,
		Configuration: datatypes.JSONMap{"name": "stream-" + uuid.NewString()},
		Information:   datatypes.JSONMap(info),
	}
	require.NoError(t, j.Db.Conn.Create(device).Error)
	return device
}

func seedAction(t *testing.T, j *joystick.Joystick, params string) *models.Action {
	action := &models.Action{Name: "action-" + uuid.NewString(), Params: datatypes.JSON(params)}
	require.NoError(t, j.Db.Conn.Create(action).Error)
	return action
}

func findAction(t *testing.T, j *joystick.Joystick, name string) *models.Action {
	var action models.Action
	require.NoError(t, j.Db.Conn.First(&action, "name = ?", name).Error)
	return &action
}

func bindRun(t *testing.T, j *joystick.Joystick, action *models.Action, model *models.Model, command string, target models.RunTarget) *models.Run {
	run := &models.Run{ActionID: action.ID, ModelID: model.ID, Command: command, Target: target}
	require.NoError(t, j.Db.Conn.Create(run).Error)
	return run
}

func findUser(t *testing.T, j *joystick.Joystick, email string) *models.User {
	var user models.User
	require.NoError(t, j.Db.Conn.First(&user, "email = ?", email).Error)
	return &user
}
