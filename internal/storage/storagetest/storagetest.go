// Package storagetest holds the behavioral tests every storage backend must pass.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/catalog"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/condition"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

// Character returns a populated player character with a fresh id.
func Character(t *testing.T) *character.Character {
	t.Helper()
	c, err := character.NewPlayer(catalog.Default(), "Tester", "hash", character.Scores{
		Strength: 12, Dexterity: 14, Constitution: 10,
	})
	require.NoError(t, err)
	w, a := catalog.Longsword, catalog.Leather
	c.MainHand = &w
	c.Armor = &a
	c.Jewelry = []catalog.Jewelry{catalog.RingOfProtection}
	c.Inventory.Items = []catalog.Item{catalog.HealthPotion, catalog.ThrowingKnife}
	c.LevelUps = []character.LevelUp{{Ability: catalog.Dexterity, Class: catalog.Rogue}}
	c.Conditions.Apply(catalog.Hasted, condition.Turns(2))
	c.Gold = 17
	return c
}

// RunCharacterStore exercises a CharacterStore implementation.
func RunCharacterStore(t *testing.T, store storage.CharacterStore) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "does-not-exist")
		assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		c := Character(t)
		require.NoError(t, store.Put(ctx, c))
		got, err := store.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("put replaces", func(t *testing.T) {
		c := Character(t)
		require.NoError(t, store.Put(ctx, c))
		c.Health = -3
		c.Status = character.StatusFighting
		c.EncounterID = "enc"
		require.NoError(t, store.Put(ctx, c))
		got, err := store.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, -3, got.Health)
		assert.Equal(t, character.StatusFighting, got.Status)
		assert.Equal(t, "enc", got.EncounterID)
	})

	t.Run("delete", func(t *testing.T) {
		c := Character(t)
		require.NoError(t, store.Put(ctx, c))
		require.NoError(t, store.Delete(ctx, c.ID))
		_, err := store.Get(ctx, c.ID)
		assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
		assert.NoError(t, store.Delete(ctx, c.ID), "deleting twice is not an error")
	})

	t.Run("update", func(t *testing.T) {
		chars := storage.NewCharacters(store)
		c := Character(t)
		require.NoError(t, chars.Put(ctx, c))

		updated, err := chars.Update(ctx, c.ID, func(ch *character.Character) error {
			ch.Gold = 99
			ch.Inventory.Items = append(ch.Inventory.Items, catalog.ScrollOfFireball)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 99, updated.Gold)

		_, err = chars.Update(ctx, c.ID, func(ch *character.Character) error {
			ch.Gold = 0
			if !character.RemoveFirst(&ch.Inventory.Items, catalog.PotionOfStrength) {
				return character.ErrNotInInventory
			}
			return nil
		})
		assert.ErrorIs(t, err, character.ErrNotInInventory)

		got, err := chars.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 99, got.Gold, "a failed update writes nothing")
		assert.Equal(t, catalog.ScrollOfFireball, got.Inventory.Items[len(got.Inventory.Items)-1])

		_, err = chars.Update(ctx, "missing", func(*character.Character) error { return nil })
		assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	})

	t.Run("batches", func(t *testing.T) {
		chars := storage.NewCharacters(store)
		a, b := Character(t), Character(t)
		require.NoError(t, chars.PutAll(ctx, []*character.Character{a, b}))

		got, err := chars.GetMany(ctx, []string{b.ID, a.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b.ID, got[0].ID)
		assert.Equal(t, a.ID, got[1].ID)

		_, err = chars.GetMany(ctx, []string{a.ID, "missing"})
		assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	})
}

// RunEncounterStore exercises an EncounterStore implementation.
func RunEncounterStore(t *testing.T, store storage.EncounterStore) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		e, err := store.Create(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		require.NotEmpty(t, e.ID)

		got, err := store.Get(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, got.Rotation)
		assert.Empty(t, got.Dead)
	})

	t.Run("update", func(t *testing.T) {
		e, err := store.Create(ctx, []string{"a", "b", "c"})
		require.NoError(t, err)
		e.Rotation = []string{"c", "a"}
		e.Dead = []string{"b"}
		require.NoError(t, store.Update(ctx, e))

		got, err := store.Get(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, got.Rotation)
		assert.Equal(t, []string{"b"}, got.Dead)
	})

	t.Run("update missing", func(t *testing.T) {
		err := store.Update(ctx, &combat.Encounter{ID: "00000000-0000-0000-0000-000000000000", Rotation: []string{"a"}})
		assert.ErrorIs(t, err, storage.ErrEncounterNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		e, err := store.Create(ctx, []string{"a", "b"})
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, e.ID))
		_, err = store.Get(ctx, e.ID)
		assert.ErrorIs(t, err, storage.ErrEncounterNotFound)
	})
}
