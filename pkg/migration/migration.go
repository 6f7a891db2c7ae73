// Package migration runs ordered, batch-tracked schema migrations on gorm.
// Applied names are stored in hpfoods_migrations; a rollback reverses the
// most recent batch.
package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/pkg/logger"
)

// Migration is one reversible schema change.
type Migration interface {
	Up(tx *gorm.DB) error
	Down(tx *gorm.DB) error
}

// Named pairs a migration with its timestamp-prefixed name,
// e.g. "20250701000000_create_users".
type Named struct {
	Name string
	Migration
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "hpfoods_migrations" }

// StatusRow is one line of Status output. Batch is 0 when pending.
type StatusRow struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner applies a fixed set of migrations.
type Runner struct {
	db         *gorm.DB
	migrations []Named
}

// New returns a runner for ms, sorted by name.
func New(db *gorm.DB, ms ...Named) *Runner {
	sorted := append([]Named(nil), ms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Runner{db: db, migrations: sorted}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) applied(ctx context.Context) (map[string]record, error) {
	var rows []record
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: read applied: %w", err)
	}
	out := make(map[string]record, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch(ctx context.Context) (int, error) {
	var last struct{ Max int }
	err := r.db.WithContext(ctx).Model(&record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&last).Error
	return last.Max, err
}

// Run applies every pending migration as one new batch and returns the
// names applied. Each migration commits with its record.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	last, err := r.lastBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: read batch: %w", err)
	}
	batch := last + 1

	var ran []string
	for _, m := range r.migrations {
		if _, ok := done[m.Name]; ok {
			continue
		}
		logger.Info("migration: running", "name", m.Name, "batch", batch)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&record{Name: m.Name, Batch: batch}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("migration: %s up: %w", m.Name, err)
		}
		ran = append(ran, m.Name)
	}
	return ran, nil
}

// Rollback reverses the most recent batch in reverse order and returns
// the names rolled back.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	last, err := r.lastBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: read batch: %w", err)
	}
	if last == 0 {
		return nil, nil
	}

	var records []record
	if err := r.db.WithContext(ctx).Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]Migration, len(r.migrations))
	for _, m := range r.migrations {
		byName[m.Name] = m.Migration
	}

	var rolled []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return rolled, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name)

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&record{}, rec.ID).Error
		})
		if err != nil {
			return rolled, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		rolled = append(rolled, rec.Name)
	}
	return rolled, nil
}

// Status lists every known migration with its applied batch.
func (r *Runner) Status(ctx context.Context) ([]StatusRow, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]StatusRow, 0, len(r.migrations))
	for _, m := range r.migrations {
		rec, ok := done[m.Name]
		rows = append(rows, StatusRow{Name: m.Name, Ran: ok, Batch: rec.Batch})
	}
	return rows, nil
}
