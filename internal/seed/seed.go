package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/schooldesk/api/internal/app/models"
	appRepos "github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/config"
	"github.com/schooldesk/api/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account and the fee
// structure if they don't exist yet, so a fresh install is usable
// without manual setup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	feeRepo := appRepos.NewFeeScheduleRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, fee structure)...")
	var finalErr error

	// --- Default admin account --- //
	adminEmail := config.GetEnv("SEED_ADMIN_EMAIL", "admin@schooldesk.local")
	adminPassword := config.GetEnv("SEED_ADMIN_PASSWORD", "changeme123")

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		finalErr = errors.Join(finalErr, err)
	} else {
		admin := &appModels.User{
			FirstName:    "System",
			LastName:     "Administrator",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         appModels.RoleAdmin,
			Status:       appModels.UserActive,
			Permissions:  appModels.PermissionKeys,
		}
		err = userRepo.Create(ctx, admin)
		if err != nil && !errors.Is(err, appRepos.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
		}
	}

	// --- Fee structure --- //
	schedules, err := feeRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading fee structure")
		finalErr = errors.Join(finalErr, err)
	} else if len(schedules) == 0 {
		if err := feeRepo.ReplaceAll(ctx, appModels.DefaultFeeSchedules()); err != nil {
			lgr.Error().Err(err).Msg("Error seeding default fee structure")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Msg("Default fee structure created")
		}
	}

	return finalErr
}
