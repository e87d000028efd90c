package grpc

import (
	"context"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/joystick"
)

func validateDeviceID(deviceID *string) z.ZogIssueList {
	var deviceIdValidator = z.String().Min(1).Required()
	return deviceIdValidator.Validate(deviceID)
}

func failure(message string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"success": structpb.NewBoolValue(false),
		"error":   structpb.NewStringValue(message),
	}}
}

func success(fields map[string]*structpb.Value) *structpb.Struct {
	if fields == nil {
		fields = map[string]*structpb.Value{}
	}
	fields["success"] = structpb.NewBoolValue(true)
	return &structpb.Struct{Fields: fields}
}

type runActionRequest struct {
	Device string
	Action string
}

var runActionRequestSchema = z.Struct(z.Shape{
	"device": z.String().Min(1).Required(),
	"action": z.String().Min(1).Required(),
})

func (s *DeviceControl) RunAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r runActionRequest
	if err := runActionRequestSchema.Parse(req.AsMap(), &r); err != nil {
		return failure(fmt.Sprintf("validation error: %v", err)), nil
	}

	var params map[string]any
	if p, ok := req.GetFields()["params"]; ok && p.GetStructValue() != nil {
		params = p.GetStructValue().AsMap()
	}

	result, err := s.Joystick.Action.RunAction(ctx, joystick.RunRequest{
		DeviceID:   r.Device,
		Action:     r.Action,
		Parameters: params,
		Auth:       AuthFromContext(ctx),
	})
	if err != nil {
		common.GetLoggerWith(common.LoggerNameGrpcServer).
			Debug("RunAction failed", zap.String("device", r.Device), zap.String("action", r.Action), zap.Error(err))
		return failure(err.Error()), nil
	}

	return success(map[string]*structpb.Value{
		"output": structpb.NewStringValue(result.Output),
	}), nil
}

type isPermittedRequest struct {
	UserId string
	Action string
}

var isPermittedRequestSchema = z.Struct(z.Shape{
	"userId": z.String(),
	"action": z.String().Min(1).Required(),
})

// IsPermitted answers for userId when given, otherwise for the caller.
func (s *DeviceControl) IsPermitted(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r isPermittedRequest
	if err := isPermittedRequestSchema.Parse(req.AsMap(), &r); err != nil {
		return failure(fmt.Sprintf("validation error: %v", err)), nil
	}

	userID := r.UserId
	if userID == "" {
		if auth := AuthFromContext(ctx); auth != nil {
			userID = auth.UserID
		}
	}

	permitted := s.Joystick.Permission.GetIsPermitted(ctx, userID, r.Action)
	return success(map[string]*structpb.Value{
		"permitted": structpb.NewBoolValue(permitted),
	}), nil
}

func (s *DeviceControl) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	deviceID := req.GetFields()["device"].GetStringValue()
	if err := validateDeviceID(&deviceID); err != nil {
		return failure(fmt.Sprintf("validation error: %v", err)), nil
	}

	ok, err := s.Joystick.Device.Ping(ctx, deviceID, req.GetFields()["result"].GetStringValue())
	if err != nil {
		return failure(err.Error()), nil
	}

	return success(map[string]*structpb.Value{
		"ok": structpb.NewBoolValue(ok),
	}), nil
}
