package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"inkboard/pkg/access"
	"inkboard/pkg/logger"
	"inkboard/pkg/session"
	"inkboard/services/blog/internal/entity"
	"inkboard/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the server-side pages. Access checks happen in
// AccessMiddleware before these handlers run.
type PageHandler struct {
	postUseCase usecase.PostUseCase
	authUseCase usecase.AuthUseCase
	policy      *access.Policy
	cookies     session.Cookies
	logger      *logger.Logger
}

func NewPageHandler(
	postUseCase usecase.PostUseCase,
	authUseCase usecase.AuthUseCase,
	policy *access.Policy,
	cookies session.Cookies,
	logger *logger.Logger,
) *PageHandler {
	return &PageHandler{
		postUseCase: postUseCase,
		authUseCase: authUseCase,
		policy:      policy,
		cookies:     cookies,
		logger:      logger,
	}
}

func (h *PageHandler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	role := access.ParseRole(c.GetString("user_role"))
	data["Title"] = title
	data["Role"] = string(role)
	data["CanCreatePost"] = h.authUseCase.HasRole(&entity.User{Role: role}, access.RoleAdmin)
	c.HTML(status, name, data)
}

func (h *PageHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "Sign in", gin.H{
		"ReturnURL": c.Query(h.policy.ReturnURLParam),
	})
}

func (h *PageHandler) LoginSubmit(c *gin.Context) {
	email := c.PostForm("email")
	returnURL := c.PostForm(h.policy.ReturnURLParam)

	user, token, err := h.authUseCase.Login(email, c.PostForm("password"))
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid email or password"
		if !errors.Is(err, entity.ErrInvalidCredentials) {
			h.logger.Error("[AUTH] Login failed: %v", err)
			status = http.StatusInternalServerError
			message = "Sign in is unavailable, please try again"
		}
		h.render(c, status, "login.html", "Sign in", gin.H{
			"Email":     email,
			"ReturnURL": returnURL,
			"Error":     message,
		})
		return
	}

	h.cookies.Set(c, user.Role, token)

	target := h.policy.HomeFor(user.Role)
	if safe, ok := localPath(returnURL); ok {
		target = safe
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *PageHandler) LogoutSubmit(c *gin.Context) {
	h.cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, h.policy.LoginPath)
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	category := entity.Category(c.Query("category"))
	data := gin.H{
		"Categories": h.postUseCase.Categories(),
		"Category":   category,
	}

	page, limit, err := parsePaging(c)
	if err == nil {
		var result *usecase.PostPage
		result, err = h.postUseCase.ListPosts(c.Request.Context(), page, limit, category)
		if err == nil {
			data["Posts"] = result.Posts
			data["Pagination"] = result.Pagination
			h.render(c, http.StatusOK, "dashboard.html", "Posts", data)
			return
		}
	}

	status := http.StatusBadRequest
	data["Error"] = "Invalid page or limit"
	if !errors.Is(err, entity.ErrInvalidQueryParameter) {
		h.logger.Error("[PAGE] Failed to list posts: %v", err)
		status = http.StatusInternalServerError
		data["Error"] = "Failed to fetch posts"
	}
	h.render(c, status, "dashboard.html", "Posts", data)
}

func (h *PageHandler) UserHome(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", "Dashboard", gin.H{"Heading": "User Dashboard"})
}

func (h *PageHandler) AdminHome(c *gin.Context) {
	h.render(c, http.StatusOK, "home.html", "Admin", gin.H{"Heading": "Admin Dashboard"})
}

func (h *PageHandler) NewPostPage(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, usecase.CreatePostInput{}, nil)
}

// NewPostSubmit uploads the optional image first, then creates the post
// with the resulting URL.
func (h *PageHandler) NewPostSubmit(c *gin.Context) {
	input := usecase.CreatePostInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		ImageURL:    c.PostForm("imageUrl"),
	}

	if header, err := c.FormFile("imageFile"); err == nil {
		file, err := header.Open()
		if err != nil {
			h.logger.Error("[PAGE] Failed to open upload: %v", err)
			h.renderPostForm(c, http.StatusInternalServerError, input, []string{"Failed to upload file"})
			return
		}
		imageURL, err := h.postUseCase.UploadImage(c.Request.Context(), usecase.UploadInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		file.Close()
		if err != nil {
			var uploadErr *entity.UploadError
			if errors.As(err, &uploadErr) {
				h.renderPostForm(c, http.StatusBadRequest, input, []string{uploadErr.Message})
				return
			}
			h.logger.Error("[PAGE] Failed to upload image: %v", err)
			h.renderPostForm(c, http.StatusInternalServerError, input, []string{"Failed to upload file"})
			return
		}
		input.ImageURL = imageURL
	}

	if _, err := h.postUseCase.CreatePost(c.Request.Context(), input); err != nil {
		var validationErr *entity.ValidationError
		if errors.As(err, &validationErr) {
			h.renderPostForm(c, http.StatusBadRequest, input, validationErr.Messages)
			return
		}
		h.logger.Error("[PAGE] Failed to create post: %v", err)
		h.renderPostForm(c, http.StatusInternalServerError, input, []string{"Failed to create post"})
		return
	}

	c.Redirect(http.StatusSeeOther, h.policy.ProtectedPrefix)
}

func (h *PageHandler) renderPostForm(c *gin.Context, status int, form usecase.CreatePostInput, errs []string) {
	h.render(c, status, "new_post.html", "New post", gin.H{
		"Form":       form,
		"Errors":     errs,
		"Categories": h.postUseCase.Categories(),
	})
}

// localPath accepts only same-origin absolute paths so a crafted returnUrl
// cannot send the browser elsewhere.
func localPath(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	return raw, true
}
