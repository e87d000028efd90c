package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/datatypes"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/joystick/mocks"
	"joystick.io/fleet-control/pkg/models"
	_ "joystick.io/fleet-control/pkg/testing"
)

const (
	bufSize    = 1024 * 1024
	testAPIKey = "test-api-key"
)

type testServer struct {
	control  *DeviceControl
	conn     *grpc.ClientConn
	executor *mocks.MockExecutor
}

func startTestServer(t *testing.T, limiterStore *joystick.RateLimiterStore) *testServer {
	listener := bufconn.Listen(bufSize)

	cfg, err := common.LoadConfig()
	require.NoError(t, err)
	cfg.APIKey = testAPIKey

	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	j := joystick.New(db.GetInstance(db.UseMemorySqliteDialector()), cfg)
	j.Executor = executor

	control := &DeviceControl{Joystick: j, RateLimiterStore: limiterStore}
	server := control.NewServer()

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testServer{control: control, conn: conn, executor: executor}
}

func (ts *testServer) seedBoundDevice(t *testing.T, action string, command string, target models.RunTarget) *models.Device {
	conn := ts.control.Joystick.Db.Conn

	model := models.Model{Name: "model-" + uuid.NewString()}
	require.NoError(t, conn.Create(&model).Error)

	device := models.Device{
		Name:          "device-" + uuid.NewString(),
		ModelID:       model.ID,
		Configuration: datatypes.JSONMap{"name": "stream-" + uuid.NewString()},
		Information:   datatypes.JSONMap{"host": "10.0.0.3"},
	}
	require.NoError(t, conn.Create(&device).Error)

	var a models.Action
	require.NoError(t, conn.First(&a, "name = ?", action).Error)
	require.NoError(t, conn.Create(&models.Run{ActionID: a.ID, ModelID: model.ID, Command: command, Target: target}).Error)

	return &device
}

func TestRunActionOverGrpc(t *testing.T) {
	common.SetTestLoggerNop()
	ts := startTestServer(t, nil)
	client := NewDeviceControlClient(ts.conn, testAPIKey)
	ctx := context.Background()

	device := ts.seedBoundDevice(t, "set-fps", "fps $fps", models.RunTargetLocal)
	ts.executor.EXPECT().RunLocal(gomock.Any(), "fps 25").Return("ok", nil)

	output, err := client.RunAction(ctx, device.ID, "set-fps", map[string]any{"fps": 25})
	require.NoError(t, err)
	assert.Equal(t, "ok", output)

	_, err = client.RunAction(ctx, device.ID, "set-fps", nil)
	assert.EqualError(t, err, joystick.ErrParametersRequired.Error())

	_, err = client.RunAction(ctx, uuid.NewString(), "set-fps", map[string]any{"fps": 25})
	require.Error(t, err)
	assert.Contains(t, err.Error(), joystick.ErrDeviceNotFound.Error())

	_, err = client.RunAction(ctx, "", "set-fps", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestPingAndIsPermittedOverGrpc(t *testing.T) {
	common.SetTestLoggerNop()
	ts := startTestServer(t, nil)
	client := NewDeviceControlClient(ts.conn, testAPIKey)
	ctx := context.Background()

	device := ts.seedBoundDevice(t, "ping", "ping", models.RunTargetLocal)
	ts.executor.EXPECT().Ping(gomock.Any(), "10.0.0.3").Return("1 packets received", nil)

	ok, err := client.Ping(ctx, device.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = client.Ping(ctx, "")
	assert.Error(t, err)

	var user models.User
	require.NoError(t, ts.control.Joystick.Db.Conn.First(&user, "email = ?", db.DefaultUserEmail).Error)

	permitted, err := client.IsPermitted(ctx, user.ID, "get-mode")
	require.NoError(t, err)
	assert.True(t, permitted)

	permitted, err = client.IsPermitted(ctx, user.ID, "set-mode")
	require.NoError(t, err)
	assert.False(t, permitted)

	// falls back to the caller, which is the system user for an API key
	permitted, err = client.IsPermitted(ctx, "", "set-mode")
	require.NoError(t, err)
	assert.True(t, permitted)
}

func TestAuthInterceptor(t *testing.T) {
	common.SetTestLoggerNop()
	ts := startTestServer(t, nil)
	ctx := context.Background()

	req, err := structpb.NewStruct(map[string]any{"device": uuid.NewString()})
	require.NoError(t, err)

	err = ts.conn.Invoke(ctx, MethodPing, req, new(structpb.Struct))
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = NewDeviceControlClient(ts.conn, "wrong").Ping(ctx, uuid.NewString())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	session, err := ts.control.Joystick.Auth.Login(ctx, db.DefaultUserEmail, ts.control.Joystick.Config.SeedPassword)
	require.NoError(t, err)

	out := new(structpb.Struct)
	bearerCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+session.Token)
	err = ts.conn.Invoke(bearerCtx, MethodPing, req, out)
	require.NoError(t, err)
	assert.False(t, out.GetFields()["success"].GetBoolValue())
	assert.Contains(t, out.GetFields()["error"].GetStringValue(), joystick.ErrDeviceNotFound.Error())
}

func TestRateLimitInterceptor_Ping(t *testing.T) {
	common.SetTestLoggerNop()

	limiterStore := joystick.NewRateLimiterStore(0.001, 2)
	ts := startTestServer(t, limiterStore)
	client := NewDeviceControlClient(ts.conn, testAPIKey)
	ctx := context.Background()

	device := ts.seedBoundDevice(t, "ping", "ping", models.RunTargetLocal)
	ts.executor.EXPECT().Ping(gomock.Any(), "10.0.0.3").Return("1 packets received", nil).Times(2)

	// First 2 requests should pass
	for i := 0; i < 2; i++ {
		_, err := client.Ping(ctx, device.ID)
		require.NoError(t, err, "expected request %d to pass", i+1)
	}

	// 3rd request should fail immediately
	_, err := client.Ping(ctx, device.ID)
	require.Error(t, err, "expected third request to be rate limited")

	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error")
	require.Equal(t, codes.ResourceExhausted, st.Code(), "expected ResourceExhausted code")

	// IsPermitted is not rate limited
	_, err = client.IsPermitted(ctx, "", "get-mode")
	require.NoError(t, err)
	for n := 0; n < 3; n++ {
		_, err = client.IsPermitted(ctx, "", "get-mode")
		require.NoError(t, err)
	}
}
