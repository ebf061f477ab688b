package usecase

import (
	"errors"
	"strings"
	"sync"

	"inkboard/services/blog/internal/entity"

	"github.com/go-playground/validator/v10"
)

// CreatePostInput is the client-supplied part of a post.
type CreatePostInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	Category    string `json:"category" validate:"required,post_category"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

const (
	MsgTitleRequired       = "Title is required"
	MsgTitleTooLong        = "Title must be less than 100 characters"
	MsgDescriptionRequired = "Description is required"
	MsgDescriptionTooLong  = "Description must be less than 500 characters"
	MsgCategoryRequired    = "Valid category is required"
	MsgInvalidImageURL     = "Image URL must be a valid URL"
)

// messages maps struct field and failed tag to the message shown to clients.
var messages = map[string]map[string]string{
	"Title": {
		"required": MsgTitleRequired,
		"max":      MsgTitleTooLong,
	},
	"Description": {
		"required": MsgDescriptionRequired,
		"max":      MsgDescriptionTooLong,
	},
	"Category": {
		"required":      MsgCategoryRequired,
		"post_category": MsgCategoryRequired,
	},
	"ImageURL": {
		"url": MsgInvalidImageURL,
	},
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func postValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("post_category", func(fl validator.FieldLevel) bool {
			return entity.Category(fl.Field().String()).Valid()
		})
	})
	return validate
}

func (in CreatePostInput) normalized() CreatePostInput {
	return CreatePostInput{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}

// ValidatePost checks every rule and returns all violations in field order.
// An empty result means the input is acceptable. Lengths count characters,
// not bytes.
func ValidatePost(input CreatePostInput) []string {
	err := postValidator().Struct(input.normalized())
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	var out []string
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, msg)
	}
	return out
}
