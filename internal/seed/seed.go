// Package seed creates the default role accounts on first startup so every
// stage of the approval chain has a usable login.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/bkassahun/courseload/internal/app/models"
	appRepos "github.com/bkassahun/courseload/internal/app/repositories"
	"github.com/bkassahun/courseload/internal/pkg/auth"
)

// defaultUsers is one account per role. The passwords are development
// defaults; production deployments replace them on first login.
var defaultUsers = []struct {
	Email    string
	Password string
	FullName string
	Role     appModels.RoleType
}{
	{"depthead@courseload.local", "depthead123", "Department Head", appModels.RoleDeptHead},
	{"dean@courseload.local", "dean123", "School Dean", appModels.RoleDean},
	{"vicedirector@courseload.local", "vicedirector123", "Vice Director", appModels.RoleViceDirector},
	{"scientificdirector@courseload.local", "scientificdirector123", "Scientific Director", appModels.RoleScientificDirector},
	{"finance@courseload.local", "finance123", "Finance Officer", appModels.RoleFinance},
	{"admin@courseload.local", "admin123", "System Administrator", appModels.RoleAdmin},
}

// CreateDefaultData creates the default role accounts if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default role accounts...")
	var finalErr error

	for _, u := range defaultUsers {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error hashing default password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &appModels.User{
			Email:        u.Email,
			PasswordHash: hash,
			FullName:     u.FullName,
			RoleType:     u.Role,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, appRepos.ErrEmailAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("email", u.Email).Str("role", string(u.Role)).Msg("Default user created")
	}

	return finalErr
}
