package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
)

// UserRepository stores users and their role links.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns nil, nil when no user has email. Matching ignores
// case because emails are stored normalised.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return conn(ctx, r.db, tx).Create(user).Error
}

// AssignRole links userID to roleID. Assigning the same role twice is a
// duplicate error.
func (r *UserRepository) AssignRole(ctx context.Context, tx *gorm.DB, userID string, roleID uint) error {
	return conn(ctx, r.db, tx).Create(&models.UserRole{UserID: userID, RoleID: roleID}).Error
}

// RoleNames lists the user's roles in assignment order.
func (r *UserRepository) RoleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("user_roles").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.id ASC").
		Pluck("roles.name", &names).Error
	return names, err
}
