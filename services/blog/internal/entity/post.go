package entity

import "time"

type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryLifestyle  Category = "lifestyle"
	CategoryBusiness   Category = "business"
	CategoryHealth     Category = "health"
)

// CategoryOption pairs a category with its display label.
type CategoryOption struct {
	Value Category `json:"value"`
	Label string   `json:"label"`
}

var Categories = []CategoryOption{
	{Value: CategoryTechnology, Label: "Technology"},
	{Value: CategoryLifestyle, Label: "Lifestyle"},
	{Value: CategoryBusiness, Label: "Business"},
	{Value: CategoryHealth, Label: "Health"},
}

func (c Category) Valid() bool {
	for _, option := range Categories {
		if option.Value == c {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	for _, option := range Categories {
		if option.Value == c {
			return option.Label
		}
	}
	return string(c)
}

// DefaultUserID owns every post; there is no multi-user ownership.
const DefaultUserID int64 = 1

const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
)

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalPosts  int  `json:"totalPosts"`
	HasMore     bool `json:"hasMore"`
}

// NextID is max(existing ids) + 1, or 1 for an empty collection.
func NextID(posts []*Post) int64 {
	var max int64
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
