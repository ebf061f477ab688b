package persistent

import (
	"context"
	"sync"

	"inkboard/services/blog/internal/entity"
)

type memoryPostStore struct {
	mu    sync.RWMutex
	posts []*entity.Post
}

func NewMemoryPostStore(seed ...*entity.Post) PostStore {
	return &memoryPostStore{posts: clonePosts(seed)}
}

func (s *memoryPostStore) GetAll(ctx context.Context) ([]*entity.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePosts(s.posts), nil
}

func (s *memoryPostStore) Append(ctx context.Context, post *entity.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = entity.NextID(s.posts)
	stored := *post
	s.posts = append(s.posts, &stored)
	return nil
}
