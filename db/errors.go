package db

import (
	"errors"

	"gorm.io/gorm"
)

// Business-rule rejections surfaced to controllers. Each one maps to a
// distinct user-facing message; infrastructure errors pass through as-is.
var (
	ErrSlotUnavailable   = errors.New("requested date range conflicts with an existing order")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrMissingNotes      = errors.New("terminal transition requires a note")
	ErrStatusConflict    = errors.New("item status changed concurrently")
	ErrNotFound          = errors.New("not found")
	ErrInvalidDateRange  = errors.New("delivery date must not be after due date")
	ErrItemNotRentable   = errors.New("item is not in a rentable status")
	ErrInvalidStatus     = errors.New("unknown status value")
)

// asNotFound folds gorm's record-not-found into the taxonomy so callers
// never see raw infrastructure errors for a missing id.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
