package database

import (
	"gorm.io/gorm"

	"github.com/avdonin/resbook/internal/model"
)

type MissionQuery struct {
	Query[model.Mission]
	id   uint
	name string
	full bool
}

func NewMissionQuery(db *gorm.DB) *MissionQuery {
	return &MissionQuery{
		Query: Query[model.Mission]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "missions.created_at DESC",
		},
	}
}

func (q *MissionQuery) Order(s string) *MissionQuery {
	q.order = s
	return q
}

func (q *MissionQuery) Limit(n int) *MissionQuery {
	q.limit = n
	return q
}

func (q *MissionQuery) Offset(n int) *MissionQuery {
	q.offset = n
	return q
}

func (q *MissionQuery) Id(id uint) *MissionQuery {
	q.id = id
	return q
}

func (q *MissionQuery) Name(name string) *MissionQuery {
	q.name = name
	return q
}

// Full preloads all five booking timelines.
func (q *MissionQuery) Full() *MissionQuery {
	q.full = true
	return q
}

func (q *MissionQuery) where() *gorm.DB {
	tx := q.db

	if q.full {
		for _, assoc := range []string{"Stations", "Crawlers", "Platforms", "RadioTerminals", "Operators"} {
			tx = tx.Preload(assoc, func(db *gorm.DB) *gorm.DB {
				return db.Order("start_time")
			})
		}
	}

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.name != "" {
		tx = tx.Where("name = ?", q.name)
	}

	return tx
}

func (q *MissionQuery) Get() []*model.Mission {
	return q.get(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) One() *model.Mission {
	return q.one(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Update(updates map[string]any) error {
	return q.updateOrError(q.where().Model(&model.Mission{}), updates)
}

func (q *MissionQuery) Delete() error {
	return q.where().Delete(&model.Mission{}).Error
}
