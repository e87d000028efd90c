package joystick

import (
	"context"

	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
)

// allowedActions resolves user -> level -> rule -> rule actions in a single
// query and returns which of names the rule allows.
func (j *Joystick) allowedActions(ctx context.Context, userID string, names []string) ([]string, error) {
	var allowed []string
	err := j.Db.Conn.WithContext(ctx).
		Table("users").
		Joins("JOIN rules ON rules.level_id = users.level_id").
		Joins("JOIN rule_actions ON rule_actions.rule_id = rules.id").
		Joins("JOIN actions ON actions.id = rule_actions.action_id").
		Where("users.id = ? AND users.level_id <> '' AND actions.name IN ?", userID, names).
		Pluck("actions.name", &allowed).Error
	return allowed, err
}

func (j *Joystick) getIsPermitted(ctx context.Context, userID string, action string) bool {
	return j.getIsPermittedMany(ctx, userID, []string{action})[action]
}

func (j *Joystick) getIsPermittedMany(ctx context.Context, userID string, actions []string) map[string]bool {
	logger := common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPermission),
	)

	result := make(map[string]bool, len(actions))
	for _, name := range actions {
		result[name] = false
	}
	if userID == "" || len(actions) == 0 {
		return result
	}

	allowed, err := j.allowedActions(ctx, userID, actions)
	if err != nil {
		logger.Error("Failed to resolve permissions", zap.String("user", userID), zap.Error(err))
		return result
	}

	for _, name := range allowed {
		result[name] = true
	}

	logger.Debug("Resolved permissions", zap.String("user", userID), zap.Any("permissions", result))
	return result
}

func (j *Joystick) getIsRoutePermitted(ctx context.Context, userID string, route string) bool {
	var count int64
	err := j.Db.Conn.WithContext(ctx).
		Table("permissions").
		Joins("JOIN permission_users ON permission_users.permission_id = permissions.id").
		Where("permissions.name = ? AND permission_users.user_id = ?", route, userID).
		Count(&count).Error
	if err != nil {
		common.GetLoggerWith(
			common.LoggerNameJoystickCore,
			zap.String(common.LoggerFieldCategory, common.LoggerCategoryPermission),
		).Error("Failed to resolve route permission", zap.String("route", route), zap.Error(err))
		return false
	}
	return count > 0
}

type IPermissionImpl struct {
	joystick *Joystick
}

func (ip *IPermissionImpl) GetIsPermitted(ctx context.Context, userID string, action string) bool {
	return ip.joystick.getIsPermitted(ctx, userID, action)
}

func (ip *IPermissionImpl) GetIsPermittedMany(ctx context.Context, userID string, actions []string) map[string]bool {
	return ip.joystick.getIsPermittedMany(ctx, userID, actions)
}

func (ip *IPermissionImpl) GetIsRoutePermitted(ctx context.Context, userID string, route string) bool {
	return ip.joystick.getIsRoutePermitted(ctx, userID, route)
}

func (j *Joystick) GetIPermission() IPermission {
	return &IPermissionImpl{joystick: j}
}
