package store

import (
	"errors"
	"fmt"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

//go:generate mockgen -source=store.go -destination=mocks/gateway.go -package=mocks

// ErrNotFound is returned by Load when nothing has been stored yet.
var ErrNotFound = errors.New("roster not found")

// ErrPersistence wraps every read, decode, encode or write failure.
var ErrPersistence = errors.New("persistence failure")

// Gateway loads and saves the whole roster as one document.
type Gateway interface {
	// Load returns the stored records, or ErrNotFound if none were saved.
	Load() ([]models.Record, error)

	// Save replaces the stored document with records.
	Save(records []models.Record) error
}

// persistErr tags err with ErrPersistence and an operation context.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
