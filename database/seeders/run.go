// Package seeders fills a fresh database with reference data. Every
// seeder is idempotent and safe to re-run.
package seeders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/pkg/logger"
)

// Seeder writes one kind of reference data.
type Seeder struct {
	Name string
	Run  func(ctx context.Context, db *gorm.DB) error
}

// All lists the seeders in the order they run.
func All() []Seeder {
	return []Seeder{
		{Name: "roles", Run: SeedRoles},
		{Name: "menu_items", Run: SeedMenu},
	}
}

// RunAll executes every seeder and stops at the first error.
func RunAll(ctx context.Context, db *gorm.DB) error {
	for _, s := range All() {
		logger.Info("seeder: running", "name", s.Name)
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %q: %w", s.Name, err)
		}
	}
	return nil
}
