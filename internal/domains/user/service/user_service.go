package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aHaldin/pickmyartist/internal/domains/user"
	"github.com/aHaldin/pickmyartist/internal/shared/utils"
	"github.com/aHaldin/pickmyartist/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	repo         user.Repository
	jwtManager   *jwt.Manager
	accessExpiry time.Duration
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, accessExpiry time.Duration) user.Service {
	return &userService{
		repo:         repo,
		jwtManager:   jwtManager,
		accessExpiry: accessExpiry,
	}
}

// ========================================
// REGISTER
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := utils.NormalizeEmail(req.Email)

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE ACCOUNT
	// The unique index on email is the authority; the repository maps
	// a duplicate insert to ErrEmailAlreadyExists.
	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	// 4. ISSUE TOKENS
	return s.buildSession(u)
}

// ========================================
// LOGIN
// ========================================

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same response as a bad password: no account enumeration
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.buildSession(u)
}

// ========================================
// REFRESH
// ========================================

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// Reload the account so role changes take effect on refresh
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidToken
		}
		return nil, err
	}

	return s.buildSession(u)
}

func (s *userService) GetByID(ctx context.Context, id string) (*user.UserDTO, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, user.ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	dto := user.ToDTO(u)
	return &dto, nil
}

// ========================================
// HELPERS
// ========================================

func (s *userService) buildSession(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         user.ToDTO(u),
	}, nil
}
