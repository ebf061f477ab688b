package usecase

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"inkboard/pkg/logger"
	"inkboard/pkg/queue"
	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	MaxUploadSize = 5000000

	MsgNoFile          = "No file uploaded"
	MsgFileTooLarge    = "File size exceeds 5MB limit"
	MsgInvalidFileType = "Invalid file type. Only jpg, jpeg, png, and webp are allowed"

	eventPublishTimeout = 3 * time.Second
)

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// ImageStorage is satisfied by *s3.Client.
type ImageStorage interface {
	UploadFile(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}

// EventPublisher is satisfied by *queue.Client.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// PostCreatedEvent is published after a post is stored.
type PostCreatedEvent struct {
	PostID    int64           `json:"post_id"`
	Title     string          `json:"title"`
	Category  entity.Category `json:"category"`
	UserID    int64           `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// UploadInput describes one uploaded file. Size is the declared size in bytes.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

type PostUseCase interface {
	ListPosts(ctx context.Context, page, limit int, category entity.Category) (*PostPage, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error)
	UploadImage(ctx context.Context, input UploadInput) (string, error)
	Categories() []entity.CategoryOption
}

type postUseCase struct {
	store  persistent.PostStore
	images ImageStorage
	events EventPublisher
	now    func() time.Time
	logger *logger.Logger
}

// NewPostUseCase wires the post workflows. images and events may be nil;
// a nil clock means time.Now.
func NewPostUseCase(
	store persistent.PostStore,
	images ImageStorage,
	events EventPublisher,
	now func() time.Time,
	logger *logger.Logger,
) PostUseCase {
	if now == nil {
		now = time.Now
	}
	return &postUseCase{
		store:  store,
		images: images,
		events: events,
		now:    now,
		logger: logger,
	}
}

func (uc *postUseCase) ListPosts(ctx context.Context, page, limit int, category entity.Category) (*PostPage, error) {
	all, err := uc.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}
	return QueryPosts(all, page, limit, category)
}

func (uc *postUseCase) CreatePost(ctx context.Context, input CreatePostInput) (*entity.Post, error) {
	if msgs := ValidatePost(input); len(msgs) > 0 {
		return nil, &entity.ValidationError{Messages: msgs}
	}
	in := input.normalized()

	post := &entity.Post{
		Title:       in.Title,
		Description: in.Description,
		Category:    entity.Category(in.Category),
		ImageURL:    in.ImageURL,
		UserID:      entity.DefaultUserID,
		CreatedAt:   uc.now().UTC(),
	}

	if err := uc.store.Append(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}

	uc.logger.Info("[POST] Created post %d in category %s", post.ID, post.Category)
	uc.publishCreated(post)

	return post, nil
}

// publishCreated never fails the create; a lost event is only logged.
func (uc *postUseCase) publishCreated(post *entity.Post) {
	if uc.events == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()

	event := PostCreatedEvent{
		PostID:    post.ID,
		Title:     post.Title,
		Category:  post.Category,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
	}
	if err := uc.events.Publish(ctx, queue.RoutingPostCreated, event); err != nil {
		uc.logger.Warn("[POST] Failed to publish %s for post %d: %v", queue.RoutingPostCreated, post.ID, err)
	}
}

func (uc *postUseCase) UploadImage(ctx context.Context, input UploadInput) (string, error) {
	if input.Body == nil {
		return "", &entity.UploadError{Message: MsgNoFile}
	}
	if input.Size > MaxUploadSize {
		return "", &entity.UploadError{Message: MsgFileTooLarge}
	}
	if !acceptedImageTypes[input.ContentType] {
		return "", &entity.UploadError{Message: MsgInvalidFileType}
	}
	if uc.images == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	key := UploadKey(uc.now(), input.Filename, uuid.New().String())
	url, err := uc.images.UploadFile(ctx, key, input.Body, input.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	uc.logger.Info("[UPLOAD] Stored %s (%d bytes)", key, input.Size)
	return url, nil
}

// UploadKey builds uploads/<unix-ms>-<name>-<suffix>, keeping only
// [a-zA-Z0-9.] from the client file name and the first 8 chars of suffix.
func UploadKey(now time.Time, filename, suffix string) string {
	name := unsafeNameChars.ReplaceAllString(filename, "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("uploads/%d-%s-%s", now.UnixMilli(), name, suffix)
}

func (uc *postUseCase) Categories() []entity.CategoryOption {
	out := make([]entity.CategoryOption, len(entity.Categories))
	copy(out, entity.Categories)
	return out
}
