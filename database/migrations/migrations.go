// Package migrations lists the schema migrations in the order they apply.
package migrations

import (
	"context"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/models"
	"github.com/hpfoods/hpfoods-api/pkg/migration"
)

// All returns every migration. Names sort chronologically.
func All() []migration.Named {
	return []migration.Named{
		{Name: "20250701000000_create_identity_tables", Migration: identityTables{}},
		{Name: "20250701000001_create_menu_items", Migration: table{&models.MenuItem{}}},
		{Name: "20250701000002_create_orders", Migration: ordersTables{}},
	}
}

// Run applies every pending migration on db.
func Run(ctx context.Context, db *gorm.DB) error {
	_, err := migration.New(db, All()...).Run(ctx)
	return err
}

type table struct{ model any }

func (m table) Up(tx *gorm.DB) error   { return tx.AutoMigrate(m.model) }
func (m table) Down(tx *gorm.DB) error { return tx.Migrator().DropTable(m.model) }

type identityTables struct{}

func (identityTables) Up(tx *gorm.DB) error {
	return tx.AutoMigrate(&models.Role{}, &models.User{}, &models.UserRole{})
}

func (identityTables) Down(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&models.UserRole{}, &models.User{}, &models.Role{})
}

type ordersTables struct{}

func (ordersTables) Up(tx *gorm.DB) error {
	return tx.AutoMigrate(&models.OrderHeader{}, &models.OrderDetail{})
}

func (ordersTables) Down(tx *gorm.DB) error {
	return tx.Migrator().DropTable(&models.OrderDetail{}, &models.OrderHeader{})
}
