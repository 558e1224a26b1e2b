package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/config"
	"github.com/notablehq/notable-backend/internal/models"
	"github.com/notablehq/notable-backend/internal/security"
	"gorm.io/gorm"
)

// EnsureFirstSuperuser creates the configured superuser account if no
// user with that email exists yet. A no-op when FIRST_SUPERUSER_EMAIL
// is unset.
func EnsureFirstSuperuser(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstSuperuserEmail == "" {
		return nil
	}
	if cfg.FirstSuperuserPassword == "" {
		return errors.New("FIRST_SUPERUSER_PASSWORD is required when FIRST_SUPERUSER_EMAIL is set")
	}

	var existing models.User
	err := db.Where("email = ?", cfg.FirstSuperuserEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up first superuser: %w", err)
	}

	hash, err := security.HashPassword(cfg.FirstSuperuserPassword)
	if err != nil {
		return fmt.Errorf("failed to hash first superuser password: %w", err)
	}

	user := models.User{
		ID:             uuid.New(),
		Email:          cfg.FirstSuperuserEmail,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create first superuser: %w", err)
	}

	slog.Info("first superuser created", "email", cfg.FirstSuperuserEmail)
	return nil
}
