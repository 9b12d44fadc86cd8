// Package db provides the relational database client used by the
// service. MySQL and PostgreSQL are selected by the driver option.
package db

import (
	"context"
	"fmt"

	mysqldriver "gorm.io/driver/mysql"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	options "github.com/kart-io/lead-center/pkg/options/db"
)

// New opens a gorm connection from the options and configures the
// connection pool.
func New(opts *options.Options) (*gorm.DB, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext opens a gorm connection and verifies it with a ping
// bounded by the context.
func NewWithContext(ctx context.Context, opts *options.Options) (*gorm.DB, error) {
	if opts == nil {
		return nil, fmt.Errorf("db options cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid db options: %w", err)
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case options.DriverPostgres:
		dialector = postgresdriver.Open(opts.DSN())
	default:
		dialector = mysqldriver.Open(opts.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel(opts.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if opts.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	}
	if opts.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	}
	if opts.MaxConnectionLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", opts.Driver, err)
	}

	return db, nil
}

func logLevel(level int) gormlogger.LogLevel {
	switch level {
	case 2:
		return gormlogger.Error
	case 3:
		return gormlogger.Warn
	case 4:
		return gormlogger.Info
	default:
		return gormlogger.Silent
	}
}
