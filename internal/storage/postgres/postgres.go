// Package postgres persists characters and encounters in PostgreSQL using
// pgx v5. Characters are JSONB documents with a few denormalised columns;
// encounters are rows holding their rotation and dead list.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SofusA/cli-dungeon-sub000/internal/config"
)

// DefaultConnectTimeout bounds the readiness check when the configuration
// leaves it unset.
const DefaultConnectTimeout = 5 * time.Second

// Pool owns the connection pool shared by the repositories.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool opens a pool sized by cfg and waits for the database to answer.
//
// Precondition: cfg must pass config validation.
// Postcondition: Returns a Pool whose database answered a ping within
// cfg.ConnectTimeout, or a non-nil error with nothing left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pgx, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	p := &Pool{pool: pgx}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	if err := p.Health(ctx, timeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("database %s:%d not ready after %s: %w", cfg.Host, cfg.Port, timeout, err)
	}
	return p, nil
}

// Health pings the database, giving up after timeout.
//
// Precondition: The pool must not be closed.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Characters returns the character repository backed by this pool.
func (p *Pool) Characters() *CharacterRepository { return NewCharacterRepository(p.pool) }

// Encounters returns the encounter repository backed by this pool.
func (p *Pool) Encounters() *EncounterRepository { return NewEncounterRepository(p.pool) }

// Close releases all pool resources. Repositories from the pool are unusable
// afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
