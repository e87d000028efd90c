package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const (
	DBTypeFile     = "file"
	DBTypeMemory   = "memory"
	DBTypePostgres = "postgres"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = common.GetLoggerWith(
		common.LoggerNameDB,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMigration),
	)
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		if dialector.Name() == "sqlite" {
			if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				log.Fatal("Failed to enable sqlite foreign key support", err)
			}

			if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
		}

		if err := instance.Conn.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database schema migration completed")

		cfg, err := common.LoadConfig()
		if err != nil {
			log.Fatal("Failed to load config for seed migrations:", err)
		}

		if err := Migrate(instance.Conn, Migrations(cfg)); err != nil {
			log.Fatal("Failed to run seed migrations:", err)
		}
	})
	return instance
}

// UseDialector picks the dialector named by JOYSTICK_DB_TYPE.
func UseDialector() gorm.Dialector {
	switch common.EnvOr(common.EnvKeyDBType, DBTypeFile) {
	case DBTypeMemory:
		return UseMemorySqliteDialector()
	case DBTypePostgres:
		return UsePostgresDialector()
	default:
		return UseSqliteDialector()
	}
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(common.EnvKeyDbPath); !found {
		dbPath = "joystick.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector() gorm.Dialector {
	dsn := common.EnvOr(
		common.EnvKeyDbDSN,
		"host=localhost user=joystick password=joystick dbname=joystick port=5432 sslmode=disable",
	)
	return postgres.Open(dsn)
}
