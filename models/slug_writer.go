package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/slug"
	"gorm.io/gorm"
)

// MaxSlugAttempts bounds the suffixes tried by a single write.
const MaxSlugAttempts = 100

const slugSavepoint = "assign_slug"

// saveWithSlug performs write and, when the row has no slug yet, derives one
// from name. Each candidate is attempted under a savepoint so that a unique
// violation on index only rolls back that attempt; the next suffix is then
// tried. tx must be a transaction.
func saveWithSlug(tx *gorm.DB, name string, current **string, index string, write func(*gorm.DB) error) error {
	if *current != nil && **current != "" {
		return MapError(write(tx))
	}

	base, err := slug.Slugify(name)
	if err != nil {
		if errors.Is(err, slug.ErrInvalidName) {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		return err
	}

	var lastErr error
	for n := 0; n < MaxSlugAttempts; n++ {
		candidate := slug.Candidate(base, n)
		*current = &candidate

		if err := tx.SavePoint(slugSavepoint).Error; err != nil {
			return err
		}
		err := MapError(write(tx))
		if err == nil {
			return nil
		}
		if !IsConstraint(err, index) {
			return err
		}
		if err := tx.RollbackTo(slugSavepoint).Error; err != nil {
			return err
		}
		lastErr = err
	}

	*current = nil
	return lastErr
}

// storedSlug loads the slug already persisted for the row of model with id.
func storedSlug(tx *gorm.DB, model interface{}, id uuid.UUID) (*string, error) {
	var stored struct {
		Slug *string
	}
	if err := tx.Model(model).Select("slug").Where("id = ?", id).Take(&stored).Error; err != nil {
		return nil, MapError(err)
	}
	return stored.Slug, nil
}
