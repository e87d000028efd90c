package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"joystick.io/fleet-control/pkg/remote"
)

// DeviceControlClient calls the DeviceControl service. It mirrors the
// RunAction and Ping methods of remote.JoystickClient so either can drive
// a device.
type DeviceControlClient struct {
	conn   grpc.ClientConnInterface
	apiKey string
}

func NewDeviceControlClient(conn grpc.ClientConnInterface, apiKey string) *DeviceControlClient {
	return &DeviceControlClient{conn: conn, apiKey: apiKey}
}

func (c *DeviceControlClient) invoke(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, remote.HeaderAPIKey, c.apiKey)
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	if !out.GetFields()["success"].GetBoolValue() {
		return out, errors.New(out.GetFields()["error"].GetStringValue())
	}
	return out, nil
}

func (c *DeviceControlClient) RunAction(ctx context.Context, deviceID, action string, params map[string]any) (string, error) {
	fields := map[string]any{"device": deviceID, "action": action}
	if params != nil {
		fields["params"] = params
	}
	out, err := c.invoke(ctx, MethodRunAction, fields)
	if err != nil {
		return "", err
	}
	return out.GetFields()["output"].GetStringValue(), nil
}

func (c *DeviceControlClient) Ping(ctx context.Context, deviceID string) (bool, error) {
	out, err := c.invoke(ctx, MethodPing, map[string]any{"device": deviceID})
	if err != nil {
		return false, err
	}
	return out.GetFields()["ok"].GetBoolValue(), nil
}

func (c *DeviceControlClient) IsPermitted(ctx context.Context, userID, action string) (bool, error) {
	out, err := c.invoke(ctx, MethodIsPermitted, map[string]any{"userId": userID, "action": action})
	if err != nil {
		return false, err
	}
	return out.GetFields()["permitted"].GetBoolValue(), nil
}
