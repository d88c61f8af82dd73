// Package timeline reconciles one mission's booking intervals for a single
// resource kind. It is pure: no storage, no clocks, no side effects.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Event is the interval contract the calculator works with. Implementations
// are value types; WithStart and WithEnd return a modified copy, the receiver
// is never changed.
type Event[E any] interface {
	// GetID returns the persisted id, 0 for a not-yet-created event.
	GetID() uint
	GetStart() time.Time
	// GetEnd returns nil for an open-ended (currently active) event.
	GetEnd() *time.Time
	WithStart(time.Time) E
	WithEnd(*time.Time) E
}

// Patch is a partial update addressed to an existing event by id.
type Patch[E any] interface {
	TargetID() uint
	Apply(E) E
}

// Plan is the reconciled three-way outcome. A logical event lands in exactly
// one bucket.
type Plan[E any] struct {
	Create    []E
	Update    []E
	DeleteIDs []uint
}

// ErrFactoryRequired is returned when creates are supplied without a factory.
var ErrFactoryRequired = errors.New("event factory required for creates")

// NotFoundError is returned when a patch addresses an id that is absent from
// the timeline or marked for deletion in the same batch.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("event %d not found or marked for deletion", e.ID)
}

// ConflictError reports an unresolved overlap between two adjacent events.
// An id of 0 means the event was created in this batch and has no id yet.
type ConflictError struct {
	PrevID    uint
	NextID    uint
	PrevEnd   *time.Time
	NextStart time.Time
}

func (e *ConflictError) Error() string {
	end := "open"
	if e.PrevEnd != nil {
		end = e.PrevEnd.Format(time.RFC3339)
	}

	return fmt.Sprintf("event %s (end %s) overlaps event %s (start %s)",
		eventRef(e.PrevID), end, eventRef(e.NextID), e.NextStart.Format(time.RFC3339))
}

func eventRef(id uint) string {
	if id == 0 {
		return "new"
	}

	return fmt.Sprintf("%d", id)
}
