package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// EncounterRepository provides encounter persistence operations.
type EncounterRepository struct {
	db *pgxpool.Pool
}

// NewEncounterRepository creates an EncounterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEncounterRepository(db *pgxpool.Pool) *EncounterRepository {
	return &EncounterRepository{db: db}
}

// Create inserts a new encounter with an empty dead list.
//
// Postcondition: Returns the encounter with ID set.
func (r *EncounterRepository) Create(ctx context.Context, rotation []string) (*combat.Encounter, error) {
	e := &combat.Encounter{ID: uuid.New().String(), Rotation: append([]string(nil), rotation...)}
	_, err := r.db.Exec(ctx,
		`INSERT INTO encounters (id, rotation, dead) VALUES ($1, $2, $3)`,
		e.ID, e.Rotation, []string{},
	)
	if err != nil {
		return nil, fmt.Errorf("inserting encounter: %w", err)
	}
	return e, nil
}

// Get retrieves an encounter by id.
//
// Postcondition: Returns the Encounter or storage.ErrEncounterNotFound.
func (r *EncounterRepository) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	e := combat.Encounter{ID: id}
	err := r.db.QueryRow(ctx,
		`SELECT rotation, dead FROM encounters WHERE id = $1`, id,
	).Scan(&e.Rotation, &e.Dead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrEncounterNotFound
		}
		return nil, fmt.Errorf("querying encounter: %w", err)
	}
	if len(e.Dead) == 0 {
		e.Dead = nil
	}
	return &e, nil
}

// Update persists the rotation and dead list of e.
//
// Postcondition: Returns nil on success, storage.ErrEncounterNotFound if no row updated.
func (r *EncounterRepository) Update(ctx context.Context, e *combat.Encounter) error {
	dead := e.Dead
	if dead == nil {
		dead = []string{}
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE encounters SET rotation = $2, dead = $3, updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.Rotation, dead,
	)
	if err != nil {
		return fmt.Errorf("updating encounter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrEncounterNotFound
	}
	return nil
}

// Delete removes an encounter. Deleting a missing id is not an error.
func (r *EncounterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM encounters WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting encounter: %w", err)
	}
	return nil
}
