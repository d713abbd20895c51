package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"kanban-board.com/kanban-board/internal/cache"
	apperrors "kanban-board.com/kanban-board/internal/errors"
	"kanban-board.com/kanban-board/internal/http/validators"
	model "kanban-board.com/kanban-board/internal/models"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

const (
	tokenBytes        = 20
	minPasswordLength = 8
)

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string
	User  model.User
}

type AuthService struct {
	repos      *repository.Manager
	tokens     cache.TokenCache
	bcryptCost int
	logger     logrus.FieldLogger

	// dummyHash keeps unknown-email logins as slow as wrong-password logins.
	dummyHash []byte
}

func NewAuthService(
	repos *repository.Manager,
	tokens cache.TokenCache,
	bcryptCost int,
	logger logrus.FieldLogger,
) *AuthService {
	if tokens == nil {
		tokens = cache.NopTokenCache{}
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("kanban-dummy-password"), bcryptCost)
	if err != nil {
		logger.WithError(err).Warn("failed to prepare dummy password hash")
	}

	return &AuthService{
		repos:      repos,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
		dummyHash:  dummy,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, fullName, password, repeatedPassword string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)

	if err := validators.ValidateEmail(email); err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, apperrors.ValidationFields("fullname is required", map[string]string{
			"fullname": "this field is required",
		})
	}
	if password != repeatedPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var result AuthResult
	err = s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		taken, err := tx.Users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.ErrEmailTaken
		}

		user := &model.User{
			Email:        email,
			FullName:     fullName,
			PasswordHash: string(hash),
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}

		token, err := issueToken(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		result = AuthResult{Token: token, User: *user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", result.User.ID).Info("user registered")
	return &result, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation(`must include "email" and "password"`)
	}

	var result AuthResult
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		user, err := tx.Users.FindByEmail(ctx, email)
		if err != nil {
			if apperrors.IsNotFound(err) {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
				return apperrors.ErrInvalidCredentials
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return apperrors.ErrInvalidCredentials
		}

		token, err := tx.Tokens.FindByUserID(ctx, user.ID)
		switch {
		case err == nil:
			result = AuthResult{Token: token.Key, User: *user}
			return nil
		case !errors.Is(err, apperrors.ErrInvalidToken):
			return err
		}

		key, err := issueToken(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		result = AuthResult{Token: key, User: *user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ResolveCaller maps a bearer token to its user.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	if userID, err := s.tokens.Get(ctx, token); err == nil {
		user, err := s.repos.Users.FindByID(ctx, userID)
		if err == nil {
			return user, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		s.evict(ctx, token)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WithError(err).Warn("token cache lookup failed")
	}

	stored, err := s.repos.Tokens.FindByKey(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users.FindByID(ctx, stored.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	if err := s.tokens.Set(ctx, token, user.ID); err != nil {
		s.logger.WithError(err).Warn("token cache store failed")
	}
	return user, nil
}

// Logout revokes the token. The next login issues a new one. The cache entry
// is cleared on both sides of the row delete, and a cache failure fails the
// logout.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("evict token: %w", err)
	}
	if err := s.repos.Tokens.DeleteByKey(ctx, token); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, token); err != nil {
		return fmt.Errorf("evict token: %w", err)
	}
	return nil
}

// LookupEmail returns the user registered under email.
func (s *AuthService) LookupEmail(ctx context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.Validation("email parameter is required")
	}
	if err := validators.ValidateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrEmailNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) evict(ctx context.Context, token string) {
	if err := s.tokens.Delete(ctx, token); err != nil {
		s.logger.WithError(err).Warn("token cache eviction failed")
	}
}

func issueToken(ctx context.Context, tx *repository.Manager, userID uint) (string, error) {
	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	token, err := tx.Tokens.Issue(ctx, key, userID)
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

func newTokenKey() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func checkPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.ValidationFields("password is too short", map[string]string{
			"password": fmt.Sprintf("this password is too short, it must contain at least %d characters", minPasswordLength),
		})
	}

	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return apperrors.ValidationFields("password is entirely numeric", map[string]string{
			"password": "this password is entirely numeric",
		})
	}
	return nil
}
