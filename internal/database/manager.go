package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/avdonin/resbook/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

func (mm *DatabaseManager) DB() *gorm.DB {
	return mm.db
}

func (mm *DatabaseManager) Create(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) Save(s any) error {
	if mm == nil || mm.db == nil {
		return nil
	}

	err := mm.db.Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

func (mm *DatabaseManager) MissionQuery() *MissionQuery {
	return NewMissionQuery(mm.db)
}

func (mm *DatabaseManager) StationQuery() *CatalogQuery[model.Station] {
	return NewCatalogQuery[model.Station](mm.db)
}

func (mm *DatabaseManager) CrawlerQuery() *CatalogQuery[model.Crawler] {
	return NewCatalogQuery[model.Crawler](mm.db)
}

func (mm *DatabaseManager) PlatformQuery() *CatalogQuery[model.Platform] {
	return NewCatalogQuery[model.Platform](mm.db)
}

func (mm *DatabaseManager) RadioTerminalQuery() *CatalogQuery[model.RadioTerminal] {
	return NewCatalogQuery[model.RadioTerminal](mm.db)
}

func (mm *DatabaseManager) OperatorQuery() *CatalogQuery[model.Operator] {
	return NewCatalogQuery[model.Operator](mm.db)
}

func (mm *DatabaseManager) RoleQuery() *CatalogQuery[model.Role] {
	return NewCatalogQuery[model.Role](mm.db)
}

func (mm *DatabaseManager) AddDefaults() {
	if mm.RoleQuery().Count() == 0 {
		for _, name := range []string{"COMMANDER", "OPERATOR", "TECHNICIAN"} {
			if err := mm.Create(&model.Role{Name: name}); err != nil {
				mm.logger.Error("error create role", slog.Any("error", err))
			}
		}
	}
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	// Migrate the schema
	if err := mm.db.AutoMigrate(
		&model.Mission{},
		&model.Station{},
		&model.Crawler{},
		&model.Platform{},
		&model.RadioTerminal{},
		&model.Operator{},
		&model.Role{},
		&model.StationEvent{},
		&model.CrawlerEvent{},
		&model.PlatformEvent{},
		&model.RadioTerminalEvent{},
		&model.OperatorEvent{},
	); err != nil {
		return err
	}

	return nil
}
