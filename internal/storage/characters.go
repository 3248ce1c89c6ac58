package storage

import (
	"context"
	"fmt"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
)

// Characters layers batch loads and read-modify-write updates over a
// CharacterStore.
//
// Update is not atomic on its own; callers that race on one document must
// serialize access themselves.
type Characters struct {
	store CharacterStore
}

// NewCharacters wraps store.
//
// Precondition: store must be non-nil.
func NewCharacters(store CharacterStore) *Characters {
	return &Characters{store: store}
}

// Get returns the character with id.
func (c *Characters) Get(ctx context.Context, id string) (*character.Character, error) {
	return c.store.Get(ctx, id)
}

// GetMany returns the characters with ids, in order.
func (c *Characters) GetMany(ctx context.Context, ids []string) ([]*character.Character, error) {
	out := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		ch, err := c.store.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", id, err)
		}
		out = append(out, ch)
	}
	return out, nil
}

// Put stores ch.
func (c *Characters) Put(ctx context.Context, ch *character.Character) error {
	return c.store.Put(ctx, ch)
}

// PutAll stores every character in chars.
func (c *Characters) PutAll(ctx context.Context, chars []*character.Character) error {
	for _, ch := range chars {
		if err := c.store.Put(ctx, ch); err != nil {
			return fmt.Errorf("saving %s: %w", ch.ID, err)
		}
	}
	return nil
}

// Delete removes the character with id.
func (c *Characters) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}

// Update loads the character with id, applies fn, and stores the result if fn
// succeeds.
//
// Postcondition: On error from fn nothing is written.
func (c *Characters) Update(ctx context.Context, id string, fn func(*character.Character) error) (*character.Character, error) {
	ch, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ch); err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, ch); err != nil {
		return nil, fmt.Errorf("saving %s: %w", id, err)
	}
	return ch, nil
}
