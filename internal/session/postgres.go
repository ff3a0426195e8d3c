package session

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore persists session values in the sessions table so carts
// survive restarts and are shared across instances.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed session store.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "session-store").Logger(),
	}
}

func (s *postgresStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	query := `SELECT value FROM sessions WHERE session_id = $1 AND key = $2`

	var value []byte
	err := s.pool.QueryRow(ctx, query, sessionID, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to read session value")
		return nil, false, fmt.Errorf("failed to read session value: %w", err)
	}

	return value, true, nil
}

func (s *postgresStore) Put(ctx context.Context, sessionID, key string, value []byte) error {
	query := `
		INSERT INTO sessions (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, sessionID, key, value, time.Now()); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to write session value")
		return fmt.Errorf("failed to write session value: %w", err)
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, sessionID, key string) error {
	query := `DELETE FROM sessions WHERE session_id = $1 AND key = $2`

	if _, err := s.pool.Exec(ctx, query, sessionID, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete session value")
		return fmt.Errorf("failed to delete session value: %w", err)
	}

	return nil
}
