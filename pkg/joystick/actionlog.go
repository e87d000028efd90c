package joystick

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const (
	ActionLogSheet = "Action Logs"

	defaultActionLogLimit = 1000
)

var actionLogHeader = []any{
	"Started", "Finished", "Device", "User", "Action", "Target", "Command", "Success", "Parameters", "Result",
}

type ActionLogFilter struct {
	DeviceID string
	UserID   string
	Since    time.Time
	Limit    int
}

func (j *Joystick) getActionLogs(ctx context.Context, filter ActionLogFilter) ([]models.ActionLog, error) {
	query := j.Db.Conn.WithContext(ctx).Model(&models.ActionLog{})
	if filter.DeviceID != "" {
		query = query.Where("device_id = ?", filter.DeviceID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if !filter.Since.IsZero() {
		query = query.Where("started_at >= ?", filter.Since)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultActionLogLimit
	}

	var logs []models.ActionLog
	err := query.Order("started_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

func (j *Joystick) actionNames(ctx context.Context, logs []models.ActionLog) (map[string]string, error) {
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ActionID)
	}

	var actions []models.Action
	if err := j.Db.Conn.WithContext(ctx).Where("id IN ?", ids).Find(&actions).Error; err != nil {
		return nil, err
	}

	names := make(map[string]string, len(actions))
	for _, a := range actions {
		names[a.ID] = a.Name
	}
	return names, nil
}

// exportActionLogs writes the filtered logs as an xlsx workbook, newest first.
func (j *Joystick) exportActionLogs(ctx context.Context, filter ActionLogFilter, w io.Writer) error {
	logger := common.GetLoggerWith(
		common.LoggerNameJoystickCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAction),
	)

	logs, err := j.getActionLogs(ctx, filter)
	if err != nil {
		return err
	}

	names := map[string]string{}
	if len(logs) > 0 {
		if names, err = j.actionNames(ctx, logs); err != nil {
			return err
		}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", ActionLogSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ActionLogSheet, "A1", &actionLogHeader); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(ActionLogSheet, "A1", "J1", style)
	}

	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		action := names[l.ActionID]
		if action == "" {
			action = l.ActionID
		}
		row := []any{
			l.StartedAt.Format(time.RFC3339),
			l.FinishedAt.Format(time.RFC3339),
			l.DeviceID,
			l.UserID,
			action,
			string(l.Target),
			l.Command,
			l.Success,
			string(l.Parameters),
			string(l.Result),
		}
		if err := f.SetSheetRow(ActionLogSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write log row %d: %w", i, err)
		}
	}

	logger.Info("Exporting action logs", zap.Int("rows", len(logs)))
	return f.Write(w)
}

type IActionLogImpl struct {
	joystick *Joystick
}

func (il *IActionLogImpl) GetActionLogs(ctx context.Context, filter ActionLogFilter) ([]models.ActionLog, error) {
	return il.joystick.getActionLogs(ctx, filter)
}

func (il *IActionLogImpl) ExportActionLogs(ctx context.Context, filter ActionLogFilter, w io.Writer) error {
	return il.joystick.exportActionLogs(ctx, filter, w)
}

func (j *Joystick) GetIActionLog() IActionLog {
	return &IActionLogImpl{joystick: j}
}
