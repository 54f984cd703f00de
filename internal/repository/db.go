// Package repository is the read-only Oracle/Postgres collaborator of
// §1 ("the data-access layer, modeled here as a read-only collaborator
// returning three tabular inputs"): a thin GORM/pgx loader that turns
// the calendar, employee and demand tables into internal/tables.RawTable
// values for internal/normalize to consume. It never mutates data.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds both GORM and pgx connections, exactly as the upstream
// Oracle/CSV access layer is modeled: GORM for convenience queries,
// the pgx pool for the bulk table scans the scheduler needs.
type DB struct {
	GORM *gorm.DB
	Pool *pgxpool.Pool
}

// NewDB opens both connections against the same database URL.
func NewDB(databaseURL string) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	gormDB, err := gorm.Open(postgres.Open(databaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect with GORM: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("scheduling data source connection established")

	return &DB{GORM: gormDB, Pool: pool}, nil
}

// Close releases both connections.
func (db *DB) Close() error {
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	db.Pool.Close()
	return nil
}

// Health checks connectivity, used by the orchestrator's readiness probe.
func (db *DB) Health(ctx context.Context) error {
	sqlDB, err := db.GORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
