package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-management/internal/models"
	"fleet-management/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface defines methods for login and user administration.
type ServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

type Service struct {
	userRepo  RepositoryInterface
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewService(userRepo RepositoryInterface, jwtSecret string, tokenTTL time.Duration) ServiceInterface {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	jti, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("service.generateAuthResponse.GenerateToken: %w", err)
	}

	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenSignedString, err := accessToken.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = "" // never leaves the service

	return &models.AuthResponse{
		Status:      "success",
		AccessToken: tokenSignedString,
		UserID:      user.ID,
		Role:        user.Role,
		User:        user,
	}, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login.FindByUsername: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		return nil, models.ErrInactiveAccount
	}

	return s.generateAuthResponse(user)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if !validUserID(userID) {
		return nil, models.ErrNotFound
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.GetUser: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, filter models.ListFilter) ([]*models.User, int, error) {
	users, total, err := s.userRepo.List(ctx, utils.ClampFilter(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListUsers: %w", err)
	}
	return users, total, nil
}

func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.CreateUser.HashPassword: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusActive
	}
	user, err := s.userRepo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		Status:       status,
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreateUser: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	if !validUserID(userID) {
		return nil, models.ErrNotFound
	}
	var passwordHash *string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("service.UpdateUser.HashPassword: %w", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	user, err := s.userRepo.Update(ctx, &models.User{
		ID:       userID,
		Username: strings.TrimSpace(req.Username),
		Role:     req.Role,
		Status:   req.Status,
	}, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateUser: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return fmt.Errorf("%w: you cannot delete your own account", models.ErrInvalidInput)
	}
	if !validUserID(userID) {
		return models.ErrNotFound
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("service.DeleteUser: %w", err)
	}
	return nil
}

// EnsureAdmin creates an initial ADMIN account when the users table is
// empty. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("service.EnsureAdmin.Count: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.CreateUser(ctx, models.CreateUserRequest{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}); err != nil {
		return false, fmt.Errorf("service.EnsureAdmin: %w", err)
	}
	return true, nil
}

// user IDs are UUIDs; anything else cannot exist and would fail the cast in SQL
func validUserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
