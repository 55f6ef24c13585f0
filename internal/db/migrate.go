package db

import (
	"context"
	"fmt"

	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the API needs
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(gormModels.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
