package usecase

import (
	"fmt"
	"sort"

	"inkboard/services/blog/internal/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PostPage is one page of a filtered, newest-first listing.
type PostPage struct {
	Posts      []*entity.Post    `json:"posts"`
	Pagination entity.Pagination `json:"pagination"`
}

// QueryPosts filters all by category (empty means every category), orders
// the result newest first and cuts out the requested page. Posts with equal
// CreatedAt keep their relative order from all. The input slice is not
// modified.
func QueryPosts(all []*entity.Post, page, limit int, category entity.Category) (*PostPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be a positive integer", entity.ErrInvalidQueryParameter)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be a positive integer", entity.ErrInvalidQueryParameter)
	}

	filtered := make([]*entity.Post, 0, len(all))
	for _, p := range all {
		if category == "" || p.Category == category {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	hasMore := end < total
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &PostPage{
		Posts: filtered[start:end],
		Pagination: entity.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasMore:     hasMore,
		},
	}, nil
}
