package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avdonin/resbook/internal/database"
	"github.com/avdonin/resbook/internal/model"
)

// MissionService is plain reference CRUD for missions plus the full-timeline
// read. Timeline edits go through the per-kind BookingService.
type MissionService struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func NewMissionService(dbm *database.DatabaseManager) *MissionService {
	return &MissionService{
		dbm:    dbm,
		logger: slog.With("logger", "missions"),
	}
}

func (s *MissionService) Create(m *model.Mission) error {
	if m.Status == "" {
		m.Status = model.MissionStatusPlanned
	}

	m.Token = uuid.NewString()

	if err := s.dbm.Create(m); err != nil {
		if database.IsIntegrityViolation(err) {
			return &IntegrityError{Err: err}
		}

		return fmt.Errorf("create mission: %w", err)
	}

	return nil
}

// Get returns the mission with all five booking timelines preloaded.
func (s *MissionService) Get(id uint) (*model.Mission, error) {
	m := s.dbm.MissionQuery().Id(id).Full().One()
	if m == nil {
		return nil, fmt.Errorf("mission %d: %w", id, ErrNotFound)
	}

	return m, nil
}

// List returns missions page by page, optionally filtered by exact name.
func (s *MissionService) List(limit, offset int, name string) []*model.Mission {
	q := s.dbm.MissionQuery().Limit(limit).Offset(offset)

	if name != "" {
		q = q.Name(name)
	}

	return q.Get()
}

func (s *MissionService) Update(id uint, fields map[string]any) error {
	if s.dbm.MissionQuery().Id(id).One() == nil {
		return fmt.Errorf("mission %d: %w", id, ErrNotFound)
	}

	if err := s.dbm.MissionQuery().Id(id).Update(fields); err != nil {
		return fmt.Errorf("update mission: %w", err)
	}

	return nil
}

// Delete removes the mission; its booking events cascade with it.
func (s *MissionService) Delete(id uint) error {
	if s.dbm.MissionQuery().Id(id).One() == nil {
		return fmt.Errorf("mission %d: %w", id, ErrNotFound)
	}

	if err := s.dbm.MissionQuery().Id(id).Delete(); err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}

	s.logger.Info("mission deleted", slog.Uint64("id", uint64(id)))

	return nil
}
