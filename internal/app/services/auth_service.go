package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/config"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
	"github.com/Revach69/bashert/internal/pkg/auth"
	"github.com/Revach69/bashert/internal/pkg/validation"
)

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
	cfg        *config.Config
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	jwtService *auth.JWTService,
	cfg *config.Config,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

// Register creates a new account. Every new account starts with the
// creator role regardless of what the request carries; privileged roles
// are granted only through AssignRole.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, apperrors.NewValidationError("full name is required")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("email already in use")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var phone *string
	if trimmed := strings.TrimSpace(req.Phone); trimmed != "" {
		phone = &trimmed
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    phone,
		Roles:    []models.Role{models.RoleCreator},
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("New account registered")

	return s.generateTokenResponse(ctx, user)
}

// Login authenticates a user against their stored credentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and
// a fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found for token: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Revoke before reissuing so a captured token cannot be replayed.
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}

	err := s.tokenRepo.RevokeToken(ctx, refreshToken)
	if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// GetCurrentUser returns the account behind an ID.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// AssignRole grants a role to the account matching the given email. Only
// principals whose email is on the configured admin list may call this.
func (s *AuthService) AssignRole(ctx context.Context, actingUser *models.User, req *dto.AssignRoleRequest) (*models.User, error) {
	if !s.cfg.IsAdminEmail(actingUser.Email) {
		return nil, apperrors.NewNotAuthorizedError("role assignment is restricted to administrators")
	}

	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("unknown role: " + req.Role)
	}

	target, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AddRole(ctx, target.ID, role); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("adminID", actingUser.ID).
		Int64("targetID", target.ID).
		Str("role", string(role)).
		Msg("Role granted")

	return s.userRepo.GetByID(ctx, target.ID)
}

// generateTokenResponse creates and persists a token pair for the user.
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             dto.NewUserResponse(user),
	}, nil
}
