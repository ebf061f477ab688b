package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"inkboard/services/blog/internal/entity"
)

// postsDocument is the on-disk layout: {"posts": [...]}.
type postsDocument struct {
	Posts []*entity.Post `json:"posts"`
}

type filePostStore struct {
	mu   sync.Mutex
	path string
}

func NewFilePostStore(path string) PostStore {
	return &filePostStore{path: path}
}

func (s *filePostStore) GetAll(ctx context.Context) ([]*entity.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *filePostStore) Append(ctx context.Context, post *entity.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return err
	}

	post.ID = entity.NextID(posts)
	stored := *post
	posts = append(posts, &stored)

	return s.save(posts)
}

func (s *filePostStore) load() ([]*entity.Post, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*entity.Post{}, nil
	}
	if err != nil {
		return nil, &entity.StorageError{Op: "read", Err: err}
	}

	var doc postsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entity.StorageError{Op: "decode", Err: fmt.Errorf("%s: %w", s.path, err)}
	}
	if doc.Posts == nil {
		doc.Posts = []*entity.Post{}
	}
	return doc.Posts, nil
}

// save writes through a temp file in the same directory so readers never see
// a half-written document.
func (s *filePostStore) save(posts []*entity.Post) error {
	data, err := json.MarshalIndent(postsDocument{Posts: posts}, "", "  ")
	if err != nil {
		return &entity.StorageError{Op: "encode", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entity.StorageError{Op: "write", Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".posts-*.json")
	if err != nil {
		return &entity.StorageError{Op: "write", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &entity.StorageError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &entity.StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &entity.StorageError{Op: "write", Err: err}
	}
	return nil
}
