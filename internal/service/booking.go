package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/avdonin/resbook/internal/database"
	"github.com/avdonin/resbook/internal/model"
	"github.com/avdonin/resbook/internal/timeline"
)

// BookingEvent is what the orchestrators need from an event row on top of
// the calculator's interval contract.
type BookingEvent[E any] interface {
	timeline.Event[E]
	GetMissionID() uint
	GetResourceID() uint
	WithMission(uint) E
	WithResource(uint) E
}

// CreatePayload materializes a new event of its kind.
type CreatePayload[E any] interface {
	NewEvent() E
	ResourceID() uint
	Window() (time.Time, *time.Time)
	Validate() error
}

// UpdatePayload is a partial edit; ResourceRef reports whether the payload
// names a resource instance (only then is availability re-checked).
type UpdatePayload[E any] interface {
	timeline.Patch[E]
	ResourceRef() (uint, bool)
}

// BookingService runs one resource kind's booking operations, parameterized
// over the event row, create payload and update payload types.
type BookingService[E BookingEvent[E], C CreatePayload[E], P UpdatePayload[E]] struct {
	dbm    *database.DatabaseManager
	rt     model.ResourceType
	store  *database.EventStore[E]
	logger *slog.Logger
}

func NewBookingService[E BookingEvent[E], C CreatePayload[E], P UpdatePayload[E]](
	dbm *database.DatabaseManager, rt model.ResourceType,
) *BookingService[E, C, P] {
	return &BookingService[E, C, P]{
		dbm:    dbm,
		rt:     rt,
		store:  database.NewEventStore[E](dbm.DB(), rt),
		logger: slog.With("logger", "booking."+string(rt)),
	}
}

func (s *BookingService[E, C, P]) ResourceType() model.ResourceType {
	return s.rt
}

// UpdateTimeline reconciles the mission's timeline for this resource kind
// with a batch of creates, updates and deletes. Availability of every
// resource named by the batch is checked first (fail fast, no partial
// commit), then the change plan is computed and applied, all inside one
// transaction.
func (s *BookingService[E, C, P]) UpdateTimeline(
	ctx context.Context,
	missionID uint,
	creates []C,
	updates []P,
	deleteIDs []uint,
	autoFix bool,
) error {
	for _, c := range creates {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return s.dbm.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if database.NewMissionQuery(tx).Id(missionID).One() == nil {
			return fmt.Errorf("mission %d: %w", missionID, ErrNotFound)
		}

		store := s.store.WithTx(tx)

		current, err := store.ForMission(missionID)
		if err != nil {
			return fmt.Errorf("load timeline: %w", err)
		}

		for _, c := range creates {
			start, end := c.Window()
			if err := s.ensureAvailable(store, c.ResourceID(), start, end, missionID); err != nil {
				return err
			}
		}

		byID := make(map[uint]E, len(current))
		for _, ev := range current {
			byID[ev.GetID()] = ev
		}

		// each patch is applied to its target up front: the availability
		// window is the patched event's own window, and a patch that breaks
		// the interval invariant fails the whole batch
		for _, u := range updates {
			ev, ok := byID[u.TargetID()]
			if !ok {
				return &timeline.NotFoundError{ID: u.TargetID()}
			}

			patched := u.Apply(ev)

			if end := patched.GetEnd(); end != nil && !patched.GetStart().Before(*end) {
				return model.ErrInvalidInterval
			}

			if resID, ok := u.ResourceRef(); ok {
				if err := s.ensureAvailable(store, resID, patched.GetStart(), patched.GetEnd(), missionID); err != nil {
					return err
				}
			}
		}

		plan, err := timeline.CalculateChanges(current, updates, creates, deleteIDs, autoFix, func(c C) E {
			return c.NewEvent().WithMission(missionID)
		})
		if err != nil {
			return err
		}

		if err := store.BulkApply(plan.Create, plan.Update, plan.DeleteIDs); err != nil {
			if database.IsIntegrityViolation(err) {
				return &IntegrityError{Err: err}
			}

			return fmt.Errorf("apply timeline: %w", err)
		}

		s.logger.Info("timeline updated",
			slog.Uint64("mission", uint64(missionID)),
			slog.Int("created", len(plan.Create)),
			slog.Int("updated", len(plan.Update)),
			slog.Int("deleted", len(plan.DeleteIDs)))

		return nil
	})
}

// Timeline returns the mission's events for this resource kind ordered by
// start time.
func (s *BookingService[E, C, P]) Timeline(ctx context.Context, missionID uint) ([]E, error) {
	return s.store.WithTx(s.dbm.DB().WithContext(ctx)).ForMission(missionID)
}

// SwitchResource hands the resource over to the mission at the current
// instant: the active event is closed and a new open-ended one is created,
// both inside one transaction so a failed open rolls back the close. If the
// mission already holds the requested resource the call is a no-op and the
// active event is returned unchanged.
func (s *BookingService[E, C, P]) SwitchResource(
	ctx context.Context,
	missionID uint,
	resourceID uint,
	data C,
) (E, error) {
	var result E

	if err := data.Validate(); err != nil {
		return result, err
	}

	err := s.dbm.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if database.NewMissionQuery(tx).Id(missionID).One() == nil {
			return fmt.Errorf("mission %d: %w", missionID, ErrNotFound)
		}

		store := s.store.WithTx(tx)
		now := time.Now().UTC()

		active, err := store.LastActive(missionID)
		if err != nil {
			return fmt.Errorf("load active event: %w", err)
		}

		if active != nil && (*active).GetResourceID() == resourceID {
			result = *active
			return nil
		}

		if err := s.ensureAvailable(store, resourceID, now, nil, missionID); err != nil {
			return err
		}

		if active != nil {
			closed := (*active).WithEnd(&now)
			if err := store.Save(&closed); err != nil {
				return fmt.Errorf("close active event: %w", err)
			}
		}

		ev := data.NewEvent().WithMission(missionID).WithResource(resourceID).WithStart(now).WithEnd(nil)

		if err := store.Create(&ev); err != nil {
			if database.IsIntegrityViolation(err) {
				return &IntegrityError{Err: err}
			}

			return fmt.Errorf("open event: %w", err)
		}

		s.logger.Info("resource switched",
			slog.Uint64("mission", uint64(missionID)),
			slog.Uint64("resource", uint64(resourceID)))

		result = ev

		return nil
	})

	return result, err
}

// CreateEvent inserts a single historical or future event after checking
// availability over the event's own window. It does not reconcile the
// mission's timeline; the caller is trusted not to self-overlap.
func (s *BookingService[E, C, P]) CreateEvent(ctx context.Context, missionID uint, data C) (E, error) {
	var result E

	if err := data.Validate(); err != nil {
		return result, err
	}

	err := s.dbm.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if database.NewMissionQuery(tx).Id(missionID).One() == nil {
			return fmt.Errorf("mission %d: %w", missionID, ErrNotFound)
		}

		store := s.store.WithTx(tx)

		start, end := data.Window()
		if err := s.ensureAvailable(store, data.ResourceID(), start, end, missionID); err != nil {
			return err
		}

		ev := data.NewEvent().WithMission(missionID)

		if err := store.Create(&ev); err != nil {
			if database.IsIntegrityViolation(err) {
				return &IntegrityError{Err: err}
			}

			return fmt.Errorf("create event: %w", err)
		}

		result = ev

		return nil
	})

	return result, err
}

// UpdateEvent applies a partial edit to one event by id.
func (s *BookingService[E, C, P]) UpdateEvent(ctx context.Context, id uint, patch P) (E, error) {
	var result E

	err := s.dbm.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		current, err := store.ByID(id)
		if err != nil {
			return fmt.Errorf("load event: %w", err)
		}

		if current == nil {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}

		ev := patch.Apply(*current)

		if end := ev.GetEnd(); end != nil && !ev.GetStart().Before(*end) {
			return model.ErrInvalidInterval
		}

		if err := store.Save(&ev); err != nil {
			return fmt.Errorf("save event: %w", err)
		}

		result = ev

		return nil
	})

	return result, err
}

// DeleteEvent removes one event by id.
func (s *BookingService[E, C, P]) DeleteEvent(ctx context.Context, id uint) error {
	rows, err := s.store.WithTx(s.dbm.DB().WithContext(ctx)).DeleteByID(id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}

	return nil
}

func (s *BookingService[E, C, P]) ensureAvailable(
	store *database.EventStore[E],
	resourceID uint,
	start time.Time,
	end *time.Time,
	excludeMission uint,
) error {
	conflicts, err := store.Overlapping(resourceID, start, end, excludeMission, true)
	if err != nil {
		return fmt.Errorf("availability check: %w", err)
	}

	if len(conflicts) > 0 {
		return &UnavailableError{Resource: s.rt, ResourceID: resourceID}
	}

	return nil
}
