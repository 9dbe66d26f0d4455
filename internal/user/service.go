package user

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/validation"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*SessionUser, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	IssueToken(u *SessionUser) (string, error)
	ParseToken(token string) (*SessionUser, error)
}

type service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, secret string) Service {
	return &service{repo: repo, secret: secret}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, validation.Wrap(ErrUsernameExists, "username", ErrUsernameExists.Error())
	}

	taken, err = s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, validation.Wrap(ErrEmailExists, "email", ErrEmailExists.Error())
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashed,
		Role:     RoleUser,
		Age:      input.Age,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, ErrUsernameExists):
			return nil, validation.Wrap(err, "username", err.Error())
		case errors.Is(err, ErrEmailExists):
			return nil, validation.Wrap(err, "email", err.Error())
		}
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, username, password string) (*SessionUser, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Authenticate"),
	)

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login failed: unknown username")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login failed: password mismatch", zap.Int64("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	return u.SessionUser(), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) IssueToken(u *SessionUser) (string, error) {
	return IssueToken(s.secret, u)
}

func (s *service) ParseToken(token string) (*SessionUser, error) {
	return ParseToken(s.secret, token)
}
