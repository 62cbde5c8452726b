package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a MySQL connection.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
	Timeout  time.Duration
}

// dsn builds the driver connection string. parseTime maps DATETIME columns
// to time.Time; loc=UTC keeps times consistent across machines;
// clientFoundRows makes UPDATE report matched rows instead of changed rows,
// so an affected-rows check distinguishes a missing row from a no-op write.
func dsn(cfg Config) string {
	auth := cfg.User
	if cfg.Password != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Password)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, cfg.Host, cfg.Port, cfg.Database)
}

// Open connects to MySQL, configures the pool and verifies connectivity with
// a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("mysql open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	return db, nil
}
