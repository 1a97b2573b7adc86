package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jfuenzalida/restaurante-backend/internal/hash"
	"github.com/jfuenzalida/restaurante-backend/internal/models"
	"github.com/jfuenzalida/restaurante-backend/internal/mykafka"
	"github.com/jfuenzalida/restaurante-backend/internal/repo"
	"github.com/jfuenzalida/restaurante-backend/internal/transport"
)

const (
	RoleCustomer = "cliente"
	RoleCashier  = "cajero"
	RoleAdmin    = "admin"
)

func IsStaff(role string) bool {
	return role == RoleCashier || role == RoleAdmin
}

type AuthService struct {
	Repo          *repo.GormRepo
	Producer      *mykafka.Producer
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	User           *models.User
	AccessToken    string
	AccessExpires  time.Time
	RefreshToken   string
	RefreshExpires time.Time
}

// Register creates the user together with their cart, so every customer
// has exactly one cart from the start.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	}

	_, err := s.Repo.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         RoleCustomer,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.Repo.GetOrCreateCart(ctx, user.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	access, accessExp, err := SignAccessToken(user.ID, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := SignRefreshToken(user.ID, user.Role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	stored := &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, stored); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:           user,
		AccessToken:    access,
		AccessExpires:  accessExp,
		RefreshToken:   refresh,
		RefreshExpires: refreshExp,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, rawRefresh)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
