package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func TestLoadFixtures(t *testing.T) {
	yamlDoc := `
posts:
  - title: "  Hello  "
    description: World
    category: health
    createdAt: 2024-01-05T10:00:00Z
  - title: No date
    description: Uses now
    category: business
    imageUrl: https://example.com/a.png
`
	posts, err := loadFixtures(strings.NewReader(yamlDoc), seedNow)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, entity.CategoryHealth, posts[0].Category)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), posts[0].CreatedAt)
	assert.Equal(t, entity.DefaultUserID, posts[0].UserID)

	assert.Equal(t, seedNow, posts[1].CreatedAt)
	assert.Equal(t, "https://example.com/a.png", posts[1].ImageURL)
}

func TestLoadFixtures_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad category":  "posts:\n  - title: a\n    description: b\n    category: travel\n",
		"unknown field": "posts:\n  - title: a\n    description: b\n    category: health\n    author: me\n",
		"not yaml":      "posts: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadFixtures(strings.NewReader(doc), seedNow)
			assert.Error(t, err)
		})
	}
}

func loadBundled(t *testing.T) []*entity.Post {
	t.Helper()
	f, err := os.Open("../../../../fixtures/posts.yaml")
	require.NoError(t, err)
	defer f.Close()

	posts, err := loadFixtures(f, seedNow)
	require.NoError(t, err)
	return posts
}

func TestLoadFixtures_BundledFile(t *testing.T) {
	assert.NotEmpty(t, loadBundled(t))
}

func TestSeedPosts(t *testing.T) {
	store := persistent.NewMemoryPostStore()
	posts := []*entity.Post{
		{Title: "a", Category: entity.CategoryHealth, CreatedAt: seedNow},
		{Title: "b", Category: entity.CategoryHealth, CreatedAt: seedNow},
	}

	n, err := seedPosts(context.Background(), store, posts, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(1), posts[0].ID)
	assert.Equal(t, int64(2), posts[1].ID)

	n, err = seedPosts(context.Background(), store, []*entity.Post{{Title: "c"}}, true)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, _ := store.GetAll(context.Background())
	assert.Len(t, all, 2)
}
