package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/SscSPs/dealflow/internal/core/domain"
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/dto"
	"github.com/SscSPs/dealflow/internal/utils"
)

// DefaultUsers are the demo accounts created by SeedDefaultUsers.
var DefaultUsers = []struct {
	Email string
	Role  domain.UserRole
}{
	{Email: "ad@g.com", Role: domain.RoleAdmin},
	{Email: "a@g.com", Role: domain.RoleAnalyst},
	{Email: "p@g.com", Role: domain.RolePartner},
}

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperrors.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = domain.RoleAnalyst
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         role,
		IsActive:     true,
		AuthProvider: domain.ProviderLocal,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.UserID), slog.String("role", string(role)))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

// AuthenticateUser returns ErrUnauthorized for unknown emails, wrong passwords,
// provider-only accounts and inactive users alike.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for authentication")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user is inactive: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, provider, providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up %s user: %w", provider, err)
	}

	email = normalizeEmail(email)
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		// Linking identities silently would let a provider account take over a password account.
		s.LogInfo(ctx, "Provider sign-in for email registered with another provider",
			slog.String("provider", string(provider)), slog.Int64("user_id", existing.UserID))
		return nil, fmt.Errorf("email %s is registered with %s sign-in: %w", email, existing.AuthProvider, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	pid := providerUserID
	user = &domain.User{
		Email:          email,
		Role:           domain.RoleAnalyst,
		IsActive:       true,
		AuthProvider:   provider,
		ProviderUserID: &pid,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to create provider user", slog.String("provider", string(provider)))
		return nil, fmt.Errorf("failed to create %s user: %w", provider, err)
	}
	s.LogInfo(ctx, "Provider user created", slog.Int64("user_id", user.UserID), slog.String("provider", string(provider)))
	return user, nil
}

func (s *userService) SeedDefaultUsers(ctx context.Context, password string) (int, error) {
	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.LogInfo(ctx, "Users already present, skipping seed", slog.Int64("count", count))
		return 0, nil
	}

	created := 0
	for _, u := range DefaultUsers {
		if _, err := s.CreateUser(ctx, dto.RegisterRequest{Email: u.Email, Password: password, Role: u.Role}); err != nil {
			return created, fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		created++
	}
	return created, nil
}
