package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

// Open connects with the given dialector and migrates the readings and
// alert log tables.
func Open(dialector gorm.Dialector) (*DB, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if err := conn.AutoMigrate(&models.Reading{}, &models.AlertLog{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	if dialector.Name() == "sqlite" {
		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("set sqlite journal mode: %w", err)
		}
	}

	return &DB{Conn: conn}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func DialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case config.DBTypeFile:
		return UseSqliteDialector(cfg.Path), nil
	case config.DBTypeMemory:
		return UseMemorySqliteDialector(), nil
	case config.DBTypePostgres:
		return UsePostgresDialector(cfg.URL), nil
	case config.DBTypeMySQL:
		return UseMySQLDialector(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unknown database type: %q", cfg.Type)
	}
}

func UseSqliteDialector(path string) gorm.Dialector {
	if path == "" {
		path = "weather.db"
	}
	return sqlite.Open(filepath.Clean(path))
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// UseNamedMemorySqliteDialector gives every name its own in-memory database,
// tests use it to stay isolated from each other.
func UseNamedMemorySqliteDialector(name string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

// UsePostgresDialector also serves CockroachDB, which speaks the postgres
// wire protocol.
func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

func UseMySQLDialector(dsn string) gorm.Dialector {
	return mysql.Open(dsn)
}
