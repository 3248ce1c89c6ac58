// Package redis provides go-redis backed stores. Documents are stored as
// JSON strings under prefixed keys.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/SofusA/cli-dungeon-sub000/internal/game/character"
	"github.com/SofusA/cli-dungeon-sub000/internal/game/combat"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
)

const (
	characterKeyPrefix = "character:"
	encounterKeyPrefix = "encounter:"
	partyIndexPrefix   = "party:"
)

// NewClient connects to the redis server at addr and verifies it responds.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// CharacterStore stores characters under <prefix>character:<id> and keeps a
// set of member ids per party under <prefix>party:<id>.
type CharacterStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewCharacterStore creates a CharacterStore. prefix namespaces every key.
func NewCharacterStore(client goredis.UniversalClient, prefix string) *CharacterStore {
	return &CharacterStore{client: client, prefix: prefix}
}

func (s *CharacterStore) key(id string) string { return s.prefix + characterKeyPrefix + id }

func (s *CharacterStore) partyKey(id string) string { return s.prefix + partyIndexPrefix + id }

func (s *CharacterStore) Get(ctx context.Context, id string) (*character.Character, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("getting character: %w", err)
	}
	var c character.Character
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decoding character %s: %w", id, err)
	}
	return &c, nil
}

func (s *CharacterStore) Put(ctx context.Context, c *character.Character) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding character %s: %w", c.ID, err)
	}

	previous, err := s.Get(ctx, c.ID)
	if err != nil && !errors.Is(err, storage.ErrCharacterNotFound) {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(c.ID), data, 0)
	if previous != nil && previous.Party != c.Party {
		pipe.SRem(ctx, s.partyKey(previous.Party), c.ID)
	}
	pipe.SAdd(ctx, s.partyKey(c.Party), c.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

func (s *CharacterStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if errors.Is(err, storage.ErrCharacterNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.partyKey(c.Party), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	return nil
}

// PartyMembers returns the ids of the stored characters in party, sorted.
func (s *CharacterStore) PartyMembers(ctx context.Context, party string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.partyKey(party)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing party: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// EncounterStore stores encounters as JSON under <prefix>encounter:<id>.
type EncounterStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewEncounterStore creates an EncounterStore. prefix namespaces every key.
func NewEncounterStore(client goredis.UniversalClient, prefix string) *EncounterStore {
	return &EncounterStore{client: client, prefix: prefix}
}

func (s *EncounterStore) key(id string) string { return s.prefix + encounterKeyPrefix + id }

func (s *EncounterStore) Create(ctx context.Context, rotation []string) (*combat.Encounter, error) {
	e := &combat.Encounter{ID: uuid.New().String(), Rotation: append([]string(nil), rotation...)}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding encounter: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(e.ID), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("creating encounter: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("creating encounter: id %s already taken", e.ID)
	}
	return e, nil
}

func (s *EncounterStore) Get(ctx context.Context, id string) (*combat.Encounter, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrEncounterNotFound
		}
		return nil, fmt.Errorf("getting encounter: %w", err)
	}
	var e combat.Encounter
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decoding encounter %s: %w", id, err)
	}
	return &e, nil
}

func (s *EncounterStore) Update(ctx context.Context, e *combat.Encounter) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding encounter: %w", err)
	}
	ok, err := s.client.SetXX(ctx, s.key(e.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("updating encounter: %w", err)
	}
	if !ok {
		return storage.ErrEncounterNotFound
	}
	return nil
}

func (s *EncounterStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("deleting encounter: %w", err)
	}
	return nil
}
