// Package services contains server-side business logic. This file holds
// UserService: registration, login and access-token verification.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/common"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/cryptox"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/auth"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/config"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/models"
	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/server/repositories/repomanager"
)

// Credentials is the register/login request body.
type Credentials struct {
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
// - Authenticate: resolve an access token to a user id
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a user. Empty fields or an over-long password give
// common.ErrorValidation; a taken username gives common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, c Credentials) (*models.User, error) {
	if err := validateStruct(c); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(c.Password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrorValidation)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, &models.User{UserName: c.UserName, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and returns a signed access token. Unknown
// users and wrong passwords both yield common.ErrorUnauthorized and cost the
// same bcrypt work, as do empty fields.
func (s *UserService) Login(ctx context.Context, c Credentials) (string, error) {
	if err := validateStruct(c); err != nil {
		cryptox.BurnCompare(c.Password)
		return "", common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, c.UserName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.BurnCompare(c.Password)
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := cryptox.CheckPassword(user.PasswordHash, c.Password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Authenticate returns the user id carried by a valid access token, or an
// error matching common.ErrInvalidToken.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
