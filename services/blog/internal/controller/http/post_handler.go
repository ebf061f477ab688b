package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"inkboard/pkg/logger"
	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the file limit for boundaries and headers.
const multipartOverhead = 1 << 20

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Newest-first page of posts with optional exact category filter
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number, starting at 1" default(1)
// @Param        limit query int false "Posts per page" default(10)
// @Param        category query string false "Category filter" Enums(technology, lifestyle, business, health)
// @Success      200  {object}  usecase.PostPage
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, limit, err := parsePaging(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch posts")
		return
	}
	category := entity.Category(c.Query("category"))

	result, err := h.postUseCase.ListPosts(c.Request.Context(), page, limit, category)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Validate and store a new post. All violated rules are reported together.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body usecase.CreatePostInput true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string][]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req usecase.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Store a jpg, jpeg, png or webp image up to 5MB and return its public URL
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload [post]
func (h *PostHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, usecase.MaxUploadSize+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": usecase.MsgFileTooLarge})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.MsgNoFile})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to open upload: %w", err), "Failed to upload file")
		return
	}
	defer file.Close()

	url, err := h.postUseCase.UploadImage(c.Request.Context(), usecase.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
}

// ListCategories godoc
// @Summary      List categories
// @Description  Categories accepted by post creation, with display labels
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string][]entity.CategoryOption
// @Router       /categories [get]
func (h *PostHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.postUseCase.Categories()})
}

// parsePaging applies defaults only to absent or empty parameters.
func parsePaging(c *gin.Context) (page, limit int, err error) {
	if page, err = queryInt(c, "page", usecase.DefaultPage); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(c, "limit", usecase.DefaultLimit); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func queryInt(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a positive integer", entity.ErrInvalidQueryParameter, name)
	}
	return n, nil
}
