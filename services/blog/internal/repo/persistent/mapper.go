package persistent

import (
	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/model"
)

func toPostModel(p *entity.Post) *model.PostModel {
	return &model.PostModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    string(p.Category),
		ImageURL:    p.ImageURL,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
	}
}

func toPostEntity(m *model.PostModel) *entity.Post {
	return &entity.Post{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category:    entity.Category(m.Category),
		ImageURL:    m.ImageURL,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}
