package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avdonin/resbook/internal/model"
)

// EventStore is the persistence side of one booking timeline: all reads and
// writes for a single event table, parameterized over the event type at
// compile time. Instances are cheap, a store bound to a transaction is
// obtained with WithTx.
type EventStore[E any] struct {
	db   *gorm.DB
	meta model.ResourceMeta
}

func NewEventStore[E any](db *gorm.DB, rt model.ResourceType) *EventStore[E] {
	return &EventStore[E]{db: db, meta: rt.Meta()}
}

func (s *EventStore[E]) WithTx(tx *gorm.DB) *EventStore[E] {
	return &EventStore[E]{db: tx, meta: s.meta}
}

// ForMission returns the mission's events for this resource kind, time
// ordered.
func (s *EventStore[E]) ForMission(missionID uint) ([]E, error) {
	var res []E

	err := s.db.Where("mission_id = ?", missionID).Order("start_time").Find(&res).Error

	return res, err
}

// Overlapping returns events of other missions that intersect the window
// [start, end), nil end meaning an unbounded window. The predicate is
// existing.start < end AND (existing.end > start OR existing.end IS NULL).
// With lock the matched rows are locked FOR UPDATE so a concurrent writer
// cannot pass the same check before this transaction commits; sqlite has no
// row locks, there the database-level write lock covers it.
func (s *EventStore[E]) Overlapping(resourceID uint, start time.Time, end *time.Time, excludeMission uint, lock bool) ([]E, error) {
	tx := s.db.Table(s.meta.Table).
		Where(s.meta.FKColumn+" = ?", resourceID).
		Where("(end_time > ? OR end_time IS NULL)", start)

	if end != nil {
		tx = tx.Where("start_time < ?", *end)
	}

	if excludeMission != 0 {
		tx = tx.Where("mission_id <> ?", excludeMission)
	}

	if lock && s.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var res []E

	err := tx.Order("start_time").Find(&res).Error

	return res, err
}

// LastActive returns the mission's open-ended event, nil if there is none.
// Several open events are a data anomaly; the one with the latest start wins.
func (s *EventStore[E]) LastActive(missionID uint) (*E, error) {
	var res E

	err := s.db.
		Where("mission_id = ? AND end_time IS NULL", missionID).
		Order("start_time DESC").
		Limit(1).
		Take(&res).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (s *EventStore[E]) ByID(id uint) (*E, error) {
	var res E

	err := s.db.First(&res, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (s *EventStore[E]) Create(e *E) error {
	return s.db.Create(e).Error
}

func (s *EventStore[E]) Save(e *E) error {
	return s.db.Save(e).Error
}

func (s *EventStore[E]) DeleteByID(id uint) (int64, error) {
	tx := s.db.Delete(new(E), id)

	return tx.RowsAffected, tx.Error
}

// BulkApply executes a change plan: deletes by id, saves updates, inserts
// creates. The caller supplies the transaction; nothing here retries.
func (s *EventStore[E]) BulkApply(creates []E, updates []E, deleteIDs []uint) error {
	if len(deleteIDs) > 0 {
		if err := s.db.Delete(new(E), deleteIDs).Error; err != nil {
			return err
		}
	}

	for i := range updates {
		if err := s.db.Save(&updates[i]).Error; err != nil {
			return err
		}
	}

	if len(creates) > 0 {
		if err := s.db.Create(&creates).Error; err != nil {
			return err
		}
	}

	return nil
}

// IsIntegrityViolation reports whether err is a constraint failure surfaced
// by the database at write time, e.g. a race lost to a concurrent writer.
func IsIntegrityViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated)
}
