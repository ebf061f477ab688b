package persistent

import (
	"context"
	"fmt"

	"inkboard/services/blog/internal/entity"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PostStore is the leaf collection of posts. Backends differ only in where
// the collection lives; each one assigns ids inside its own write lock.
type PostStore interface {
	// GetAll returns a snapshot in insertion order. Callers may modify it.
	GetAll(ctx context.Context) ([]*entity.Post, error)
	// Append assigns post.ID and stores the post.
	Append(ctx context.Context, post *entity.Post) error
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend. Only the fields the chosen
// backend needs are read; connections stay owned by the caller.
type Options struct {
	Backend  string
	FilePath string
	Redis    *redis.Client
	RedisKey string
	DB       *gorm.DB
}

func NewPostStore(opts Options) (PostStore, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryPostStore(), nil
	case BackendFile:
		return NewFilePostStore(opts.FilePath), nil
	case BackendRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("%s backend requires a redis client", BackendRedis)
		}
		return NewRedisPostStore(opts.Redis, opts.RedisKey), nil
	case BackendPostgres:
		if opts.DB == nil {
			return nil, fmt.Errorf("%s backend requires a database connection", BackendPostgres)
		}
		return NewPostgresPostStore(opts.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func clonePosts(posts []*entity.Post) []*entity.Post {
	out := make([]*entity.Post, len(posts))
	for i, p := range posts {
		cp := *p
		out[i] = &cp
	}
	return out
}
