package usecase

import (
	"fmt"
	"strings"

	"inkboard/pkg/access"
	"inkboard/pkg/jwt"
	"inkboard/pkg/logger"
	"inkboard/services/blog/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

// Credential is a plaintext account used to build the built-in user table.
type Credential struct {
	Email    string
	Password string
	Role     access.Role
}

// DummyCredentials are the two accounts available without a user store.
var DummyCredentials = []Credential{
	{Email: "test@gmail.com", Password: "12345678", Role: access.RoleUser},
	{Email: "admin@gmail.com", Password: "admin123", Role: access.RoleAdmin},
}

type AuthUseCase interface {
	// Login returns the matching user and a signed session token.
	Login(email, password string) (*entity.User, string, error)
	GetUser(email string) (*entity.User, error)
	HasRole(user *entity.User, required access.Role) bool
}

type authUseCase struct {
	users      map[string]*entity.User
	missHash   []byte
	jwtService *jwt.Service
	logger     *logger.Logger
}

// NewAuthUseCase hashes creds once at startup; plaintext is not retained.
func NewAuthUseCase(creds []Credential, jwtService *jwt.Service, logger *logger.Logger) (AuthUseCase, error) {
	users := make(map[string]*entity.User, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", c.Email, err)
		}
		email := normalizeEmail(c.Email)
		users[email] = &entity.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         c.Role,
		}
	}

	missHash, err := bcrypt.GenerateFromPassword([]byte("inkboard"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	return &authUseCase{
		users:      users,
		missHash:   missHash,
		jwtService: jwtService,
		logger:     logger,
	}, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, ok := uc.users[normalizeEmail(email)]
	if !ok {
		// Unknown emails still pay for one comparison.
		_ = bcrypt.CompareHashAndPassword(uc.missHash, []byte(password))
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.Email, string(user.Role))
	if err != nil {
		uc.logger.Error("[AUTH] Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("[AUTH] %s signed in as %s", user.Email, user.Role)
	return user, token, nil
}

func (uc *authUseCase) GetUser(email string) (*entity.User, error) {
	user, ok := uc.users[normalizeEmail(email)]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return user, nil
}

// HasRole reports whether user may act as required. Admin implies every role.
func (uc *authUseCase) HasRole(user *entity.User, required access.Role) bool {
	if user == nil {
		return false
	}
	return user.Role.Satisfies(required)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
