package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avdonin/resbook/internal/database"
)

// Catalogs are read-only over HTTP, they are provisioned out of band.
func addCatalogRoutes(app *App, f *fiber.App) {
	f.Get("/catalog/stations", getCatalogHandler(app.dbm.StationQuery))
	f.Get("/catalog/crawlers", getCatalogHandler(app.dbm.CrawlerQuery))
	f.Get("/catalog/platforms", getCatalogHandler(app.dbm.PlatformQuery))
	f.Get("/catalog/rts", getCatalogHandler(app.dbm.RadioTerminalQuery))
	f.Get("/catalog/operators", getCatalogHandler(app.dbm.OperatorQuery))
	f.Get("/catalog/roles", getCatalogHandler(app.dbm.RoleQuery))
}

func getCatalogHandler[T any](query func() *database.CatalogQuery[T]) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := query().Limit(ctx.QueryInt("limit", 500)).Offset(ctx.QueryInt("offset", 0))

		if id := ctx.QueryInt("id", 0); id > 0 {
			one := q.Id(uint(id)).One()
			if one == nil {
				return ctx.SendStatus(fiber.StatusNotFound)
			}

			return ctx.JSON(one)
		}

		return ctx.JSON(q.Get())
	}
}
