package persistent

import (
	"context"
	"time"

	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/model"

	"gorm.io/gorm"
)

// postgresPostStore leaves id assignment to the BIGSERIAL column.
type postgresPostStore struct {
	db *gorm.DB
}

func NewPostgresPostStore(db *gorm.DB) PostStore {
	return &postgresPostStore{db: db}
}

func (s *postgresPostStore) GetAll(ctx context.Context) ([]*entity.Post, error) {
	var models []model.PostModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, &entity.StorageError{Op: "read", Err: err}
	}

	posts := make([]*entity.Post, 0, len(models))
	for i := range models {
		posts = append(posts, toPostEntity(&models[i]))
	}
	return posts, nil
}

func (s *postgresPostStore) Append(ctx context.Context, post *entity.Post) error {
	m := toPostModel(post)
	m.ID = 0
	// TIMESTAMPTZ keeps microseconds.
	m.CreatedAt = m.CreatedAt.Truncate(time.Microsecond)
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return &entity.StorageError{Op: "write", Err: err}
	}
	post.ID = m.ID
	post.CreatedAt = m.CreatedAt
	return nil
}
