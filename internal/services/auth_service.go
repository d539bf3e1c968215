package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates a USER account. A taken email is a Conflict.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:    uuid.NewString(),
		Email: strings.ToLower(email),
		Name:  name,
		Hash:  string(h),
		Role:  "USER",
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if repos.IsNoRows(err) {
		return nil, ErrBadCreds
	}
	if err != nil {
		return nil, domain.Persistence(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, domain.Persistence(err)
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return domain.Persistence(s.Users.UnbindSession(ctx, sid))
}

// CurrentUser returns the user bound to sid; sql.ErrNoRows when none is.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}
