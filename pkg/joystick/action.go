package joystick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const ActionSetMode = "set-mode"

type RunRequest struct {
	DeviceID   string
	Action     string
	Parameters map[string]any
	Auth       *AuthContext
}

type RunResult struct {
	Output  string
	Command string
	Target  models.RunTarget
	LogID   string
}

type ActionSchema struct {
	Action  string
	Command string
	Target  models.RunTarget
	Params  datatypes.JSON
}

type RunEvent struct {
	Device    string `json:"device"`
	Action    string `json:"action"`
	User      string `json:"user,omitempty"`
	Success   bool   `json:"success"`
	Output    string `json:"output,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func RunTopic(deviceID string) string {
	return fmt.Sprintf("joystick/devices/%s/runs", deviceID)
}

func (j *Joystick) actionLogger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAction),
	)
}

func (j *Joystick) findAction(ctx context.Context, name string) (*models.Action, error) {
	var action models.Action
	err := j.Db.Conn.WithContext(ctx).First(&action, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("action %s: %w", name, ErrActionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &action, nil
}

// resolveRun loads the device, the action and the run binding of that action
// for the device's model. The returned action is set whenever it was found,
// even if a later lookup failed.
func (j *Joystick) resolveRun(ctx context.Context, deviceID, actionName string) (*models.Device, *models.Action, *models.Run, error) {
	device, err := j.getDevice(ctx, deviceID)
	if err != nil {
		return nil, nil, nil, err
	}

	action, err := j.findAction(ctx, actionName)
	if err != nil {
		return device, nil, nil, err
	}

	var run models.Run
	err = j.Db.Conn.WithContext(ctx).First(&run, "action_id = ? AND model_id = ?", action.ID, device.ModelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		modelName := device.ModelID
		if device.Model != nil {
			modelName = device.Model.Name
		}
		return device, action, nil, fmt.Errorf("action %s for device model %s: %w", actionName, modelName, ErrRunNotFound)
	}
	if err != nil {
		return device, action, nil, err
	}
	return device, action, &run, nil
}

// validateParams checks params against the run's schema, or the action's when
// the run has none. Coerced values replace the caller's; undeclared keys pass
// through.
func validateParams(run *models.Run, action *models.Action, params map[string]any) (map[string]any, error) {
	raw := run.Parameters
	if len(raw) == 0 {
		raw = action.Params
	}

	schema, err := ParseParamSchema(raw)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		if params == nil {
			params = map[string]any{}
		}
		return params, nil
	}
	if params == nil {
		return nil, ErrParametersRequired
	}

	validated, issues := BuildParamValidator(schema).Validate(params)
	if len(issues) > 0 {
		return nil, &ParamError{Issues: issues}
	}

	merged := maps.Clone(params)
	maps.Copy(merged, validated)
	return merged, nil
}

func (j *Joystick) execute(ctx context.Context, device *models.Device, target models.RunTarget, command string) (string, error) {
	if target == models.RunTargetLocal {
		return j.Executor.RunLocal(ctx, command)
	}
	return j.Executor.RunOnDevice(ctx, ActiveConnection(device), command)
}

func (j *Joystick) commandEnv() CommandEnv {
	if j.Config == nil {
		return CommandEnv{}
	}
	return CommandEnv{StreamAPIURL: j.Config.StreamAPIURL, SwitcherAPIURL: j.Config.SwitcherAPIURL}
}

func (j *Joystick) runAction(ctx context.Context, req RunRequest) (*RunResult, error) {
	logger := j.actionLogger()
	started := time.Now()

	logger.Info("Running command",
		zap.String("device", req.DeviceID),
		zap.String("action", req.Action),
		zap.Any("parameters", req.Parameters),
	)

	device, action, run, err := j.resolveRun(ctx, req.DeviceID, req.Action)
	if err != nil {
		return nil, j.failRun(ctx, req, action, "", err, started)
	}

	if !req.Auth.IsSystem() {
		userID := ""
		if req.Auth != nil {
			userID = req.Auth.UserID
		}
		if !j.Permission.GetIsPermitted(ctx, userID, action.Name) {
			return nil, j.failRun(ctx, req, action, "", fmt.Errorf("%s: %w", action.Name, ErrNotPermitted), started)
		}
	}

	params, err := validateParams(run, action, req.Parameters)
	if err != nil {
		return nil, j.failRun(ctx, req, action, "", err, started)
	}

	command := ParseActionCommand(run.Command, device, params, j.commandEnv(), req.Auth)
	logger.Debug("Rendered command", zap.String("device", device.ID), zap.String("command", command))

	output, err := j.execute(ctx, device, run.Target, command)
	if err != nil {
		return nil, j.failRun(ctx, req, action, command, err, started)
	}

	if action.Name == ActionSetMode {
		mode, _ := params["mode"].(string)
		if err := j.Device.UpdateMode(ctx, device.ID, mode); err != nil {
			logger.Error("Failed to store device mode", zap.String("device", device.ID), zap.Error(err))
		}
		if j.Stream != nil {
			if _, err := j.Device.SyncStatus(ctx, device.ID); err != nil {
				logger.Warn("Failed to refresh device status", zap.String("device", device.ID), zap.Error(err))
			}
		}
	}

	result := &RunResult{Output: output, Command: command, Target: run.Target}
	result.LogID = j.recordRun(ctx, req, action, command, run.Target, params,
		map[string]any{"success": true, "output": output}, true, started)

	j.publish(ctx, RunTopic(device.ID), RunEvent{
		Device:    device.ID,
		Action:    action.Name,
		User:      authUserID(req.Auth),
		Success:   true,
		Output:    output,
		Timestamp: time.Now().UnixMilli(),
	})

	logger.Info("Command executed successfully",
		zap.String("device", device.ID),
		zap.String("action", action.Name),
		zap.Duration("executionTime", time.Since(started)),
	)
	return result, nil
}

// failRun records a failed run when the action is known and hands err back.
func (j *Joystick) failRun(ctx context.Context, req RunRequest, action *models.Action, command string, err error, started time.Time) error {
	j.actionLogger().Error("Error executing command",
		zap.String("device", req.DeviceID),
		zap.String("action", req.Action),
		zap.Error(err),
	)

	if action == nil {
		action, _ = j.findAction(ctx, req.Action)
	}
	if action != nil {
		j.recordRun(ctx, req, action, command, "", req.Parameters,
			map[string]any{"error": err.Error()}, false, started)
	}

	j.publish(ctx, RunTopic(req.DeviceID), RunEvent{
		Device:    req.DeviceID,
		Action:    req.Action,
		User:      authUserID(req.Auth),
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now().UnixMilli(),
	})
	return err
}

func authUserID(auth *AuthContext) string {
	if auth == nil {
		return ""
	}
	return auth.UserID
}

func (j *Joystick) recordRun(
	ctx context.Context,
	req RunRequest,
	action *models.Action,
	command string,
	target models.RunTarget,
	params map[string]any,
	result map[string]any,
	success bool,
	started time.Time,
) string {
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, _ := json.Marshal(params)
	resultJSON, _ := json.Marshal(result)

	entry := models.ActionLog{
		UserID:     authUserID(req.Auth),
		DeviceID:   req.DeviceID,
		ActionID:   action.ID,
		Command:    command,
		Target:     target,
		Parameters: datatypes.JSON(paramsJSON),
		Result:     datatypes.JSON(resultJSON),
		Success:    success,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := j.Db.Conn.WithContext(ctx).Create(&entry).Error; err != nil {
		j.actionLogger().Error("Failed to write action log", zap.String("action", action.Name), zap.Error(err))
		return ""
	}
	return entry.ID
}

func (j *Joystick) publish(ctx context.Context, topic string, payload any) {
	if j.Events == nil {
		return
	}
	if err := j.Events.Publish(ctx, topic, payload); err != nil {
		common.GetLoggerWith(
			common.LoggerNameJoystickCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryEvents),
		).Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}

func (j *Joystick) getActionSchema(ctx context.Context, deviceID string, actionName string) (*ActionSchema, error) {
	_, action, run, err := j.resolveRun(ctx, deviceID, actionName)
	if err != nil {
		return nil, err
	}

	params := run.Parameters
	if len(params) == 0 {
		params = action.Params
	}
	return &ActionSchema{
		Action:  action.Name,
		Command: run.Command,
		Target:  run.Target,
		Params:  params,
	}, nil
}

type IActionImpl struct {
	joystick *Joystick
}

func (ia *IActionImpl) RunAction(ctx context.Context, req RunRequest) (*RunResult, error) {
	return ia.joystick.runAction(ctx, req)
}

func (ia *IActionImpl) GetActionSchema(ctx context.Context, deviceID string, action string) (*ActionSchema, error) {
	return ia.joystick.getActionSchema(ctx, deviceID, action)
}

func (j *Joystick) GetIAction() IAction {
	return &IActionImpl{joystick: j}
}
