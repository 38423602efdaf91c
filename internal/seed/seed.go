// Package seed creates the accounts the platform needs on first boot.
package seed

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	appModels "github.com/Revach69/bashert/internal/app/models"
	appRepos "github.com/Revach69/bashert/internal/app/repositories"
	"github.com/Revach69/bashert/internal/config"
	"github.com/Revach69/bashert/internal/db"
	pkgAuth "github.com/Revach69/bashert/internal/pkg/auth"
)

// CreateDefaultData ensures an account exists for every configured admin
// email. Admin accounts get the matchmaker role up front so a fresh
// deployment can assign matchmakers without manual SQL. Existing accounts
// are never touched.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	if len(cfg.Admin.Emails) == 0 {
		return nil
	}

	password := os.Getenv("BASHERT_SEED_PASSWORD")
	userRepo := appRepos.NewUserRepository(database.Pool)

	var finalErr error
	for _, email := range cfg.Admin.Emails {
		exists, err := userRepo.EmailExists(ctx, email)
		if err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Error checking admin account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		if password == "" {
			lgr.Warn().Str("email", email).
				Msg("BASHERT_SEED_PASSWORD not set - skipping admin account creation")
			continue
		}

		hashed, err := pkgAuth.HashPassword(password)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing seed password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		admin := &appModels.User{
			Email:    email,
			Password: hashed,
			FullName: "Bashert Admin",
			Roles:    []appModels.Role{appModels.RoleCreator, appModels.RoleMatchmaker, appModels.RoleOrganizer},
			IsActive: true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Str("email", email).Msg("Error creating admin account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("email", email).Msg("Seeded admin account")
	}

	return finalErr
}
