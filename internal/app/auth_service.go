package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carnage-ai/internal/model"
	"carnage-ai/internal/pkg/jwtutil"
	"carnage-ai/internal/repository"
	"carnage-ai/internal/session"
)

var (
	ErrInvalidInput      = errors.New("email and password are required")
	ErrWeakPassword      = errors.New("password must be at least 6 characters")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUnauthorized      = errors.New("unauthorized")
)

const minPasswordLength = 6

// SessionStore is the server-side session state behind login. Implemented by
// session.RedisStore.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (*session.Record, error)
	Get(ctx context.Context, id string) (*session.Record, bool, error)
	Delete(ctx context.Context, id string) error
}

type AuthService struct {
	userRepo      *repository.UserRepository
	sessions      SessionStore
	jwtSecret     string
	jwtExpiration time.Duration
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInResult struct {
	User        *model.User
	Session     *session.Record
	AccessToken string
}

func NewAuthService(userRepo *repository.UserRepository, sessions SessionStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) SignUp(input SignUpInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	fullName := strings.TrimSpace(input.FullName)

	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	record, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, record.ID)
	if err != nil {
		return nil, err
	}
	return &SignInResult{User: user, Session: record, AccessToken: token}, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrUnauthorized
	}
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentUser resolves the caller's identity from the ids the middleware
// extracted. The session must still exist server-side.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint, sessionID string) (*model.User, error) {
	if userID == 0 || sessionID == "" {
		return nil, ErrUnauthorized
	}

	record, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok || record.UserID != userID {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
