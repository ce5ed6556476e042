package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const connectAttempts = 5

// Connect opens a pooled connection and waits for the database to answer a
// ping, retrying with a linear backoff.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			slog.InfoContext(ctx, "Connected to database")
			return db, nil
		}

		wait := time.Duration(attempt) * 200 * time.Millisecond
		slog.WarnContext(ctx, "Database ping failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				db.Close()
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database: %w", err)
}
