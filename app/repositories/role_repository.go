package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hpfoods/hpfoods-api/app/models"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// EnsureRoles inserts any of names that are missing and returns all of
// them keyed by name. A concurrent insert of the same name is not an error.
func (r *RoleRepository) EnsureRoles(ctx context.Context, tx *gorm.DB, names ...string) (map[string]models.Role, error) {
	db := conn(ctx, r.db, tx)

	rows := make([]models.Role, 0, len(names))
	for _, n := range names {
		rows = append(rows, models.Role{Name: n})
	}
	if len(rows) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	var found []models.Role
	if err := db.Where("name IN ?", names).Find(&found).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Role, len(found))
	for _, role := range found {
		out[role.Name] = role
	}
	return out, nil
}
