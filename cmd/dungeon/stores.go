package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/SofusA/cli-dungeon-sub000/internal/config"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage/memory"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage/postgres"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage/redis"
	"github.com/SofusA/cli-dungeon-sub000/migrations"
)

type stores struct {
	characters storage.CharacterStore
	encounters storage.EncounterStore
	close      func()
}

// openStores connects the backend selected in cfg. Postgres schemas are
// migrated first when migrate is set.
func openStores(ctx context.Context, cfg config.Config, migrate bool, logger *zap.Logger) (*stores, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		if migrate {
			if err := migrations.Up(cfg.Database.DSN()); err != nil {
				return nil, err
			}
			logger.Info("database migrated")
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("database ready",
			zap.String("host", cfg.Database.Host),
			zap.Duration("connect_timeout", cfg.Database.ConnectTimeout),
		)
		return &stores{
			characters: pool.Characters(),
			encounters: pool.Encounters(),
			close:      pool.Close,
		}, nil
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		return &stores{
			characters: redis.NewCharacterStore(client, cfg.Redis.KeyPrefix),
			encounters: redis.NewEncounterStore(client, cfg.Redis.KeyPrefix),
			close: func() {
				if err := client.Close(); err != nil {
					logger.Warn("closing redis client", zap.Error(err))
				}
			},
		}, nil
	case config.BackendMemory:
		return &stores{
			characters: memory.NewCharacterStore(),
			encounters: memory.NewEncounterStore(),
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
