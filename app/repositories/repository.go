// Package repositories holds the gorm-backed stores. Methods that take a
// tx run on it when it is non-nil, so services can group writes in one
// db.Transaction.
package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// IsDuplicate reports whether err is a unique-constraint violation.
// Drivers without error translation are matched on their message.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
