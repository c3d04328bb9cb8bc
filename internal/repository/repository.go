// Package repository wraps GORM access to the rental tables. Repositories are
// cheap values bound to one *gorm.DB, so services build them on a transaction
// handle when a write must be atomic.
package repository

import (
	"errors"
	"fmt"

	"rental-service/internal/apperr"

	"gorm.io/gorm"
)

// Scope narrows a query, usually one of the scope package predicates
type Scope = func(*gorm.DB) *gorm.DB

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
