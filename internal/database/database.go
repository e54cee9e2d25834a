package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/init-pkg/menu-import/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Open connects gorm to the configured database and applies the pool limits.
func Open(cfg config.DbConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnLifetime)

	return db, nil
}

func dialectorFor(cfg config.DbConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(cfg.Dsn), nil
	case DriverMySQL:
		return mysql.Open(cfg.Dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Migrate runs the embedded migrations of the configured dialect.
func Migrate(cfg config.DbConfig) error {
	if _, err := dialectorFor(cfg); err != nil {
		return err
	}

	db, err := sql.Open(cfg.Driver, cfg.Dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	return runMigrations(db, cfg.Driver)
}

func runMigrations(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
