// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/sportsplus-backend/internal/config"
	"github.com/your-org/sportsplus-backend/internal/infrastructure/database/redis"
	"github.com/your-org/sportsplus-backend/internal/pkg/apperrors"
	"github.com/your-org/sportsplus-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user accounts and sessions
type Service struct {
	db              *gorm.DB
	config          *config.Config
	redisClient     *redis.Client
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		redisClient:     redisClient,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account and opens a session
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.InvalidInputf("passwords do not match")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	if result := s.db.Where("email = ?", email).First(&existing); result.Error == nil {
		return nil, apperrors.Conflictf("an account with this email already exists")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InvalidInputf("%s", err.Error())
	}

	usr := User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
		IsAdmin:   false,
	}

	if err := s.db.Create(&usr).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to create user")
	}

	return s.openSession(ctx, &usr)
}

// Login authenticates a user and opens a session
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var usr User
	result := s.db.Where("email = ? AND is_active = ?", email, true).First(&usr)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidInputf("invalid email or password")
		}
		return nil, apperrors.Storage(result.Error, "failed to look up user")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, usr.Password); err != nil {
		return nil, apperrors.InvalidInputf("invalid email or password")
	}

	now := time.Now().UTC()
	usr.LastLoginAt = &now
	s.db.Model(&usr).Update("last_login_at", now)

	return s.openSession(ctx, &usr)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The presented token's ID must match the server-side session record,
// so a logout invalidates refresh tokens that are still unexpired.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.InvalidInputf("invalid refresh token")
	}

	storedTokenID, err := s.redisClient.Get(ctx, sessionKey(claims.UserID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, apperrors.InvalidStatef("session has been closed")
		}
		return nil, apperrors.Storage(err, "failed to look up session")
	}
	if storedTokenID != claims.ID {
		return nil, apperrors.InvalidStatef("refresh token has been superseded")
	}

	var usr User
	result := s.db.Where("id = ? AND is_active = ?", claims.UserID, true).First(&usr)
	if result.Error != nil {
		return nil, apperrors.NotFoundf("user not found or inactive")
	}

	return s.openSession(ctx, &usr)
}

// Logout closes the user's session, invalidating outstanding refresh tokens
func (s *Service) Logout(ctx context.Context, userID uint) error {
	if err := s.redisClient.Del(ctx, sessionKey(userID)); err != nil {
		return apperrors.Storage(err, "failed to close session")
	}
	return nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(userID uint) (*User, error) {
	var usr User
	result := s.db.Where("id = ? AND is_active = ?", userID, true).First(&usr)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user not found")
		}
		return nil, apperrors.Storage(result.Error, "failed to retrieve user")
	}

	usr.Password = ""
	return &usr, nil
}

// UpdateProfile updates mutable profile fields
func (s *Service) UpdateProfile(userID uint, updates map[string]interface{}) (*User, error) {
	usr, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	// Never mass-assign credentials or role flags
	delete(updates, "password")
	delete(updates, "email")
	delete(updates, "is_admin")
	delete(updates, "is_active")

	if err := s.db.Model(usr).Updates(updates).Error; err != nil {
		return nil, apperrors.Storage(err, "failed to update profile")
	}

	usr.Password = ""
	return usr, nil
}

// openSession issues a token pair and records the refresh token ID in
// redis under the user's session key. Issuing a new session replaces
// any previous one.
func (s *Service) openSession(ctx context.Context, usr *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to generate access token")
	}

	refreshToken, tokenID, err := s.jwtManager.GenerateRefreshToken(usr.ID, usr.Email)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to generate refresh token")
	}

	err = s.redisClient.Set(ctx, sessionKey(usr.ID), tokenID, s.config.JWT.RefreshTokenExpiry)
	if err != nil {
		return nil, apperrors.Storage(err, "failed to record session")
	}

	usr.Password = ""
	return &AuthResponse{
		User:         usr,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}
