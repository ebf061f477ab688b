package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/repo/persistent"
	"inkboard/services/blog/internal/usecase"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	Posts []fixturePost `yaml:"posts"`
}

type fixturePost struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	ImageURL    string    `yaml:"imageUrl"`
	CreatedAt   time.Time `yaml:"createdAt"`
}

// loadFixtures decodes and validates every post. A missing createdAt
// becomes now. The whole file is rejected if any post is invalid.
func loadFixtures(r io.Reader, now time.Time) ([]*entity.Post, error) {
	var file fixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	posts := make([]*entity.Post, 0, len(file.Posts))
	for i, fp := range file.Posts {
		input := usecase.CreatePostInput{
			Title:       fp.Title,
			Description: fp.Description,
			Category:    fp.Category,
			ImageURL:    fp.ImageURL,
		}
		if msgs := usecase.ValidatePost(input); len(msgs) > 0 {
			return nil, fmt.Errorf("post %d (%q): %s", i+1, fp.Title, strings.Join(msgs, "; "))
		}

		createdAt := fp.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		posts = append(posts, &entity.Post{
			Title:       strings.TrimSpace(fp.Title),
			Description: strings.TrimSpace(fp.Description),
			Category:    entity.Category(strings.TrimSpace(fp.Category)),
			ImageURL:    strings.TrimSpace(fp.ImageURL),
			UserID:      entity.DefaultUserID,
			CreatedAt:   createdAt.UTC(),
		})
	}
	return posts, nil
}

// seedPosts appends posts in order. With ifEmpty set, a store that already
// holds posts is left alone.
func seedPosts(ctx context.Context, store persistent.PostStore, posts []*entity.Post, ifEmpty bool) (int, error) {
	if ifEmpty {
		existing, err := store.GetAll(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	for i, post := range posts {
		if err := store.Append(ctx, post); err != nil {
			return i, fmt.Errorf("failed to append %q: %w", post.Title, err)
		}
	}
	return len(posts), nil
}
