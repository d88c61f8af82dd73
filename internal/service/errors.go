// Package service holds the orchestration layer: batch timeline updates,
// live resource switching and manual event corrections, each running inside
// one database transaction.
package service

import (
	"errors"
	"fmt"

	"github.com/avdonin/resbook/internal/model"
)

// ErrNotFound is returned when a referenced mission or event id does not
// exist (or was already deleted).
var ErrNotFound = errors.New("not found")

// UnavailableError means the requested resource is booked by another mission
// during the requested window.
type UnavailableError struct {
	Resource   model.ResourceType
	ResourceID uint
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s %d is booked by another mission for the requested window", e.Resource, e.ResourceID)
}

// IntegrityError wraps a persistence constraint failure surfacing at write
// time, e.g. a race lost to a concurrent writer. It is reported, never
// retried here.
type IntegrityError struct {
	Err error
}

func (e *IntegrityError) Error() string {
	return "storage constraint violated: " + e.Err.Error()
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
