package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hogar-conectado/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the SQL connection pool.
type Service struct {
	db *sql.DB
}

// New opens a Postgres connection pool using the pgx stdlib driver.
func New(cfg config.DatabaseConfig) (*Service, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying pool for repositories.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health returns a snapshot of pool state for the health endpoint and
// startup logging.
func (s *Service) Health(ctx context.Context) map[string]string {
	health := map[string]string{"status": "up"}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := s.db.Stats()
	health["open_connections"] = fmt.Sprintf("%d", stats.OpenConnections)
	health["in_use"] = fmt.Sprintf("%d", stats.InUse)
	health["idle"] = fmt.Sprintf("%d", stats.Idle)

	return health
}

// Close shuts down the connection pool.
func (s *Service) Close() error {
	return s.db.Close()
}
