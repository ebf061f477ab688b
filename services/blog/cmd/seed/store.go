package main

import (
	"fmt"

	"inkboard/pkg/cache"
	"inkboard/pkg/config"
	"inkboard/pkg/database"
	"inkboard/services/blog/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// openStore connects whatever the configured backend needs. closeAll releases
// those connections and is safe to call on any backend.
func openStore(cfg *config.Config) (store persistent.PostStore, closeAll func(), err error) {
	var closers []func() error
	closeAll = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.StorageBackend == persistent.BackendRedis {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, redisClient.Close)
	}

	var db *gorm.DB
	if cfg.StorageBackend == persistent.BackendPostgres {
		db, err = database.NewPostgresDB(cfg)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, sqlDB.Close)
	}

	store, err = persistent.NewPostStore(persistent.Options{
		Backend:  cfg.StorageBackend,
		FilePath: cfg.PostsFilePath,
		Redis:    redisClient,
		RedisKey: cfg.RedisPostsKey,
		DB:       db,
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return store, closeAll, nil
}
