package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/config"
	pkgAuth "github.com/Revach69/bashert/internal/pkg/auth"
	"github.com/Revach69/bashert/internal/pkg/apperrors"
)

func newTestJWTService() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "bashert.test",
	})
}

func newAuthServiceForTest(adminEmails ...string) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	cfg := &config.Config{}
	cfg.Admin.Emails = adminEmails
	svc := NewAuthService(users, tokens, newTestJWTService(), cfg, zerolog.Nop())
	return svc, users, tokens
}

func TestRegisterAlwaysStartsWithCreatorRole(t *testing.T) {
	svc, users, _ := newAuthServiceForTest()

	// Roles in the payload must be ignored no matter what they claim.
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Rivka Cohen",
		Email:    "Rivka@Example.com",
		Password: "s3cretpass",
		Roles:    []string{"matchmaker", "organizer"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	stored, err := users.GetByEmail(context.Background(), "rivka@example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleCreator}, stored.Roles)
	assert.True(t, stored.IsActive)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{FullName: "A B", Email: "not-an-email", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{FullName: "A B", Email: "a@example.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{FullName: "  ", Email: "a@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	req := &dto.RegisterRequest{FullName: "Rivka Cohen", Email: "rivka@example.com", Password: "s3cretpass"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthServiceForTest()
	ctx := context.Background()

	hashed, err := pkgAuth.HashPassword("s3cretpass")
	require.NoError(t, err)
	users.add(&models.User{
		Email:    "rivka@example.com",
		Password: hashed,
		FullName: "Rivka Cohen",
		Roles:    []models.Role{models.RoleCreator},
		IsActive: true,
	})

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "RIVKA@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "rivka@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown accounts answer exactly like wrong passwords.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, users, _ := newAuthServiceForTest()

	hashed, err := pkgAuth.HashPassword("s3cretpass")
	require.NoError(t, err)
	users.add(&models.User{
		Email:    "off@example.com",
		Password: hashed,
		FullName: "Disabled User",
		Roles:    []models.Role{models.RoleCreator},
		IsActive: false,
	})

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "off@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokens := newAuthServiceForTest()
	ctx := context.Background()

	first, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: "Rivka Cohen", Email: "rivka@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	second, err := svc.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The presented token is revoked before the new pair is issued.
	assert.True(t, tokens.isRevoked(first.RefreshToken))
	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = svc.RefreshToken(ctx, "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogout(t *testing.T) {
	svc, _, tokens := newAuthServiceForTest()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		FullName: "Rivka Cohen", Email: "rivka@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	assert.True(t, tokens.isRevoked(resp.RefreshToken))

	// Logging out an unknown token is not an error.
	assert.NoError(t, svc.Logout(ctx, "already-gone"))
}

func TestAssignRole(t *testing.T) {
	svc, users, _ := newAuthServiceForTest("admin@bashert.app")
	ctx := context.Background()

	admin := users.add(&models.User{
		Email: "admin@bashert.app", FullName: "Admin",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})
	target := users.add(&models.User{
		Email: "shadchan@example.com", FullName: "Shadchan",
		Roles: []models.Role{models.RoleCreator}, IsActive: true,
	})

	updated, err := svc.AssignRole(ctx, admin, &dto.AssignRoleRequest{
		Email: "shadchan@example.com", Role: "Matchmaker",
	})
	require.NoError(t, err)
	assert.True(t, updated.HasRole(models.RoleMatchmaker))

	// Granting twice does not duplicate the role.
	updated, err = svc.AssignRole(ctx, admin, &dto.AssignRoleRequest{
		Email: "shadchan@example.com", Role: "matchmaker",
	})
	require.NoError(t, err)
	assert.Len(t, updated.Roles, 2)

	_, err = svc.AssignRole(ctx, admin, &dto.AssignRoleRequest{Email: target.Email, Role: "superuser"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AssignRole(ctx, target, &dto.AssignRoleRequest{Email: admin.Email, Role: "matchmaker"})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}
