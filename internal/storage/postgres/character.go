package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// CharacterRepository stores characters as JSONB documents. The id, party,
// kind and status columns are denormalised for querying.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Get retrieves a character by id.
//
// Postcondition: Returns the Character or storage.ErrCharacterNotFound.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM characters WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	var c character.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding character %s: %w", id, err)
	}
	return &c, nil
}

// Put inserts or replaces c.
//
// Precondition: c.ID must be non-empty.
func (r *CharacterRepository) Put(ctx context.Context, c *character.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding character %s: %w", c.ID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO characters (id, name, party, kind, status, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			party = EXCLUDED.party,
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = NOW()`,
		c.ID, c.Name, c.Party, c.Kind.String(), c.Status.String(), data,
	)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

// Delete removes a character. Deleting a missing id is not an error.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	return nil
}
