package db

import (
	"fmt"
	"log/slog"

	"account-server/entities"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectPostgres opens the relational store, migrates the users table and
// installs the partial unique index backing the one-supervisor-per-company rule.
func ConnectPostgres(dsn string) (*GormDatabase, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	slog.Info("database connection established", "driver", "postgres")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	supervisorIndex := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON users (lower(company_name)) WHERE role = '%s'",
		SupervisorIndexName, entities.RoleSupervisor,
	)
	if err := db.Exec(supervisorIndex).Error; err != nil {
		return nil, fmt.Errorf("failed to create supervisor index: %w", err)
	}

	slog.Info("database migrations completed")

	return &GormDatabase{DB: db}, nil
}
