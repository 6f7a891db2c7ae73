package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/app/repositories"
)

// SeedRoles creates the Admin and Customer roles.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	_, err := repositories.NewRoleRepository(db).EnsureRoles(ctx, nil, models.RoleAdmin, models.RoleCustomer)
	return err
}
