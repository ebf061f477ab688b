package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"inkboard/services/blog/internal/entity"

	"github.com/redis/go-redis/v9"
)

// getter is the read side shared by *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisPostStore keeps the whole collection as one JSON document under a
// single key. Ids come from an INCR counter at <key>:seq; the document is
// rewritten under WATCH and retried until it lands or ctx ends.
type redisPostStore struct {
	client *redis.Client
	key    string
}

func NewRedisPostStore(client *redis.Client, key string) PostStore {
	return &redisPostStore{client: client, key: key}
}

func (s *redisPostStore) GetAll(ctx context.Context) ([]*entity.Post, error) {
	return s.load(ctx, s.client)
}

func (s *redisPostStore) Append(ctx context.Context, post *entity.Post) error {
	id, err := s.nextID(ctx)
	if err != nil {
		return err
	}

	candidate := *post
	candidate.ID = id

	txf := func(tx *redis.Tx) error {
		posts, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		posts = insertByID(posts, &candidate)

		data, err := json.Marshal(postsDocument{Posts: posts})
		if err != nil {
			return &entity.StorageError{Op: "encode", Err: err}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return &entity.StorageError{Op: "write", Err: err}
		}
		err := s.client.Watch(ctx, txf, s.key)
		if err == nil {
			post.ID = id
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		var storageErr *entity.StorageError
		if errors.As(err, &storageErr) {
			return err
		}
		return &entity.StorageError{Op: "write", Err: err}
	}
}

// nextID seeds the counter from the stored document the first time it is
// needed, so collections written before the counter existed keep their ids.
func (s *redisPostStore) nextID(ctx context.Context) (int64, error) {
	seqKey := s.key + ":seq"

	exists, err := s.client.Exists(ctx, seqKey).Result()
	if err != nil {
		return 0, &entity.StorageError{Op: "write", Err: err}
	}
	if exists == 0 {
		posts, err := s.load(ctx, s.client)
		if err != nil {
			return 0, err
		}
		if err := s.client.SetNX(ctx, seqKey, entity.NextID(posts)-1, 0).Err(); err != nil {
			return 0, &entity.StorageError{Op: "write", Err: err}
		}
	}

	id, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, &entity.StorageError{Op: "write", Err: fmt.Errorf("allocate id: %w", err)}
	}
	return id, nil
}

// insertByID keeps the document ordered by id when writers land out of order.
func insertByID(posts []*entity.Post, post *entity.Post) []*entity.Post {
	i := sort.Search(len(posts), func(i int) bool { return posts[i].ID > post.ID })
	posts = append(posts, nil)
	copy(posts[i+1:], posts[i:])
	posts[i] = post
	return posts
}

func (s *redisPostStore) load(ctx context.Context, cmd getter) ([]*entity.Post, error) {
	data, err := cmd.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []*entity.Post{}, nil
	}
	if err != nil {
		return nil, &entity.StorageError{Op: "read", Err: err}
	}

	var doc postsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entity.StorageError{Op: "decode", Err: fmt.Errorf("key %s: %w", s.key, err)}
	}
	if doc.Posts == nil {
		doc.Posts = []*entity.Post{}
	}
	return doc.Posts, nil
}
