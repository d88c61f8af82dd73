package database

import (
	"gorm.io/gorm"
)

// CatalogQuery serves the plain reference-data tables (stations, crawlers,
// platforms, radio terminals, operators, roles). They carry no timeline, a
// shared generic query is enough.
type CatalogQuery[T any] struct {
	Query[T]
	id uint
}

func NewCatalogQuery[T any](db *gorm.DB) *CatalogQuery[T] {
	return &CatalogQuery[T]{
		Query: Query[T]{
			db:     db,
			limit:  500,
			offset: 0,
			order:  "id",
		},
	}
}

func (q *CatalogQuery[T]) Limit(n int) *CatalogQuery[T] {
	q.limit = n
	return q
}

func (q *CatalogQuery[T]) Offset(n int) *CatalogQuery[T] {
	q.offset = n
	return q
}

func (q *CatalogQuery[T]) Id(id uint) *CatalogQuery[T] {
	q.id = id
	return q
}

func (q *CatalogQuery[T]) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	return tx
}

func (q *CatalogQuery[T]) Get() []*T {
	return q.get(q.where().Model(new(T)))
}

func (q *CatalogQuery[T]) One() *T {
	return q.one(q.where().Model(new(T)))
}

func (q *CatalogQuery[T]) Count() int64 {
	return q.count(q.where().Model(new(T)))
}
