package db

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const (
	LevelAdmin = "admin"
	LevelUser  = "user"

	DefaultUserEmail = "user@joystick.io"
)

// Migration is one seed step. IDs are applied in slice order and recorded in
// the migrations table, so a step runs at most once per database.
type Migration struct {
	ID   string
	Up   func(tx *gorm.DB) error
	Down func(tx *gorm.DB) error
}

// RoutePermissions are granted to the admin user on first start.
var RoutePermissions = []string{
	"media-route",
	"action-route",
	"parameters-route",
	"gallery-route",
	"terminal-route",
}

// user level may not change device modes or write raw parameters
var restrictedActions = map[string]bool{
	"set-mode":    true,
	"set-bitrate": true,
	"write":       true,
}

type seedAction struct {
	name   string
	params string
}

var baseActions = []seedAction{
	{"write", `{
		"type": "object",
		"properties": {
			"path": {"type": "string", "description": "A string representing the path."},
			"value": {"oneOf": [{"type": "number"}, {"type": "string"}, {"type": "boolean"}], "description": "The value can be a number, string, or boolean."}
		},
		"required": ["path", "value"]
	}`},
	{"read", `{
		"type": "object",
		"properties": {"path": {"type": "string", "description": "A string representing the path."}},
		"required": ["path"]
	}`},
	{"set-bitrate", `{
		"type": "object",
		"properties": {"bitrate": {"type": "number"}},
		"required": ["bitrate"]
	}`},
	{"get-bitrate", ""},
	{"set-mode", `{
		"type": "object",
		"properties": {"mode": {"type": "string", "enum": ["cmd", "live", "vmd", "offline"]}},
		"required": ["mode"]
	}`},
	{"get-mode", ""},
	{"set-roi", `{
		"type": "object",
		"properties": {"rois": {"type": "array"}}
	}`},
	{"get-roi", ""},
	{"ping", ""},
}

var streamActions = []seedAction{
	{"get-fps", ""},
	{"set-fps", `{
		"type": "object",
		"properties": {"fps": {"type": "integer"}},
		"required": ["fps"]
	}`},
	{"get-quality", ""},
	{"set-quality", `{
		"type": "object",
		"properties": {"quality": {"type": "number"}, "fps": {"type": "number"}},
		"required": ["quality", "fps"]
	}`},
}

var eventActions = []seedAction{
	{"mode_change", ""},
	{"automation_change", ""},
}

func Migrations(cfg *common.Config) []Migration {
	return []Migration{
		{
			ID: "0001_init_levels",
			Up: func(tx *gorm.DB) error {
				for _, name := range []string{LevelAdmin, LevelUser} {
					if err := tx.Create(&models.Level{Name: name}).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *gorm.DB) error {
				return tx.Where("name IN ?", []string{LevelAdmin, LevelUser}).Delete(&models.Level{}).Error
			},
		},
		{
			ID: "0002_init_users",
			Up: func(tx *gorm.DB) error {
				seeds := []struct{ email, name, level string }{
					{cfg.SystemUserEmail, "System", LevelAdmin},
					{cfg.AdminUserEmail, "Admin", LevelAdmin},
					{DefaultUserEmail, "User", LevelUser},
				}
				for _, seed := range seeds {
					if err := createUser(tx, seed.email, seed.name, cfg.SeedPassword, seed.level); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *gorm.DB) error {
				emails := []string{cfg.SystemUserEmail, cfg.AdminUserEmail, DefaultUserEmail}
				return tx.Where("email IN ?", emails).Delete(&models.User{}).Error
			},
		},
		{
			ID:   "0003_init_actions",
			Up:   func(tx *gorm.DB) error { return createActions(tx, baseActions) },
			Down: func(tx *gorm.DB) error { return deleteActions(tx, baseActions) },
		},
		{
			ID:   "0004_init_event_actions",
			Up:   func(tx *gorm.DB) error { return createActions(tx, eventActions) },
			Down: func(tx *gorm.DB) error { return deleteActions(tx, eventActions) },
		},
		{
			ID:   "0005_stream_control_actions",
			Up:   func(tx *gorm.DB) error { return createActions(tx, streamActions) },
			Down: func(tx *gorm.DB) error { return deleteActions(tx, streamActions) },
		},
		{
			ID:   "0006_init_rules",
			Up:   createRules,
			Down: deleteRules,
		},
		{
			ID: "0007_route_permissions",
			Up: func(tx *gorm.DB) error {
				var admin models.User
				if err := tx.First(&admin, "email = ?", cfg.AdminUserEmail).Error; err != nil {
					return fmt.Errorf("admin user for route permissions: %w", err)
				}
				for _, name := range RoutePermissions {
					perm := models.Permission{Name: name, Users: []models.User{admin}}
					if err := tx.Create(&perm).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *gorm.DB) error {
				var perms []models.Permission
				if err := tx.Where("name IN ?", RoutePermissions).Find(&perms).Error; err != nil {
					return err
				}
				for i := range perms {
					if err := tx.Model(&perms[i]).Association("Users").Clear(); err != nil {
						return err
					}
					if err := tx.Delete(&perms[i]).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// Migrate applies every migration not yet recorded.
func Migrate(conn *gorm.DB, migrations []Migration) error {
	logger := common.GetLoggerWith(
		common.LoggerNameDB,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMigration),
	)

	for _, m := range migrations {
		m := m
		var count int64
		if err := conn.Model(&models.MigrationRecord{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := conn.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&models.MigrationRecord{ID: m.ID}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.ID, err)
		}

		logger.Info("Applied migration", zap.String("migration", m.ID))
	}
	return nil
}

// Rollback reverts the last steps applied migrations, newest first.
func Rollback(conn *gorm.DB, migrations []Migration, steps int) error {
	logger := common.GetLoggerWith(
		common.LoggerNameDB,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMigration),
	)

	for i := len(migrations) - 1; i >= 0 && steps > 0; i-- {
		m := migrations[i]

		var record models.MigrationRecord
		err := conn.First(&record, "id = ?", m.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		err = conn.Transaction(func(tx *gorm.DB) error {
			if m.Down != nil {
				if err := m.Down(tx); err != nil {
					return err
				}
			}
			return tx.Delete(&record).Error
		})
		if err != nil {
			return fmt.Errorf("rollback %s: %w", m.ID, err)
		}

		logger.Info("Rolled back migration", zap.String("migration", m.ID))
		steps--
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUser(tx *gorm.DB, email, name, password, levelName string) error {
	var level models.Level
	if err := tx.First(&level, "name = ?", levelName).Error; err != nil {
		return fmt.Errorf("level %s: %w", levelName, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	return tx.Create(&models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		LevelID:      level.ID,
	}).Error
}

func createActions(tx *gorm.DB, seeds []seedAction) error {
	for _, seed := range seeds {
		action := models.Action{Name: seed.name}
		if seed.params != "" {
			action.Params = datatypes.JSON(seed.params)
		}
		if err := tx.Create(&action).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteActions(tx *gorm.DB, seeds []seedAction) error {
	names := make([]string, len(seeds))
	for i, seed := range seeds {
		names[i] = seed.name
	}
	return tx.Where("name IN ?", names).Delete(&models.Action{}).Error
}

func createRules(tx *gorm.DB) error {
	var actions []models.Action
	if err := tx.Order("name").Find(&actions).Error; err != nil {
		return err
	}

	var levels []models.Level
	if err := tx.Where("name IN ?", []string{LevelAdmin, LevelUser}).Find(&levels).Error; err != nil {
		return err
	}

	for _, level := range levels {
		allowed := actions
		if level.Name == LevelUser {
			allowed = common.Filter(actions, func(a models.Action) bool {
				return !restrictedActions[a.Name]
			})
		}
		rule := models.Rule{LevelID: level.ID, Actions: allowed}
		if err := tx.Create(&rule).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteRules(tx *gorm.DB) error {
	var rules []models.Rule
	if err := tx.Find(&rules).Error; err != nil {
		return err
	}
	for i := range rules {
		if err := tx.Model(&rules[i]).Association("Actions").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&rules[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
