package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation is returned when a write breaks a uniqueness,
	// foreign key or check constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidName is returned when a display name cannot produce a slug.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidRating is returned for star ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrCyclicParent is returned when a product would become its own ancestor.
	ErrCyclicParent = errors.New("product cannot be its own ancestor")

	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrSizeNotFound     = fmt.Errorf("size variant %w", ErrNotFound)
	ErrColorNotFound    = fmt.Errorf("color variant %w", ErrNotFound)
	ErrCouponNotFound   = fmt.Errorf("coupon %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review %w", ErrNotFound)
	ErrWishlistNotFound = fmt.Errorf("wishlist entry %w", ErrNotFound)
)

// integrityClass is the SQLSTATE class of integrity constraint violations.
const integrityClass = "23"

// ConstraintError describes a write rejected by the database.
type ConstraintError struct {
	Constraint string
	Code       string
	Err        error
}

func (e *ConstraintError) Error() string {
	if e.Constraint == "" {
		return fmt.Sprintf("constraint violation: %v", e.Err)
	}
	return fmt.Sprintf("constraint violation on %s: %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{ErrConstraintViolation, e.Err}
}

// MapError translates driver and gorm errors into the package sentinels.
// Errors it does not recognise are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityClass) {
		return &ConstraintError{Constraint: pgErr.ConstraintName, Code: pgErr.Code, Err: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code.Class()) == integrityClass {
		return &ConstraintError{Constraint: pqErr.Constraint, Code: string(pqErr.Code), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ConstraintError{Err: err}
	}
	return err
}

// IsConstraint reports whether err is a violation of the named constraint.
func IsConstraint(err error, name string) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Constraint == name
}
