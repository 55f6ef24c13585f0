package db

import (
	"fmt"
	"time"

	"agora/backend/internal/config"
	"agora/backend/internal/logging"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const connectAttempts = 10

// InitSQLX opens the sqlx handle used by the read-model repositories.
// The database container may still be starting, so connection is retried.
func InitSQLX(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < connectAttempts; i++ {
		conn, err = sqlx.Connect(cfg.Driver, cfg.DSN())
		if err == nil {
			logging.Info("Connected via sqlx", "driver", cfg.Driver, "attempt", i+1)
			return conn, nil
		}
		logging.Warn("Database not reachable yet", "driver", cfg.Driver, "attempt", i+1, "error", err)
		time.Sleep(500 * time.Millisecond)
	}

	return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", cfg.Driver, connectAttempts, err)
}
