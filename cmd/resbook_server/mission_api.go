package main

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avdonin/resbook/internal/model"
)

type missionPostData struct {
	Name           string     `json:"name"`
	Section        string     `json:"section"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Origin         string     `json:"origin"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
}

type missionPatchData struct {
	Name           *string    `json:"name"`
	Section        *string    `json:"section"`
	Type           *string    `json:"type"`
	Status         *string    `json:"status"`
	Origin         *string    `json:"origin"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	ActualEnd      *time.Time `json:"actual_end"`
}

func addMissionRoutes(app *App, f *fiber.App) {
	f.Get("/mission", getMissionsHandler(app))
	f.Post("/mission", getMissionCreateHandler(app))
	f.Get("/mission/:id", getMissionHandler(app))
	f.Patch("/mission/:id", getMissionPatchHandler(app))
	f.Delete("/mission/:id", getMissionDeleteHandler(app))
}

func getMissionsHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		limit := ctx.QueryInt("limit", 100)
		offset := ctx.QueryInt("offset", 0)

		return ctx.JSON(app.missions.List(limit, offset, ctx.Query("name")))
	}
}

func getMissionHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		m, err := app.missions.Get(id)
		if err != nil {
			return err
		}

		return ctx.JSON(m)
	}
}

func getMissionCreateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var data missionPostData
		if err := json.Unmarshal(ctx.Body(), &data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if data.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		m := &model.Mission{
			Name:           data.Name,
			Section:        data.Section,
			Type:           data.Type,
			Status:         data.Status,
			Origin:         data.Origin,
			ScheduledStart: data.ScheduledStart,
			ScheduledEnd:   data.ScheduledEnd,
		}

		if err := app.missions.Create(m); err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(m)
	}
}

func getMissionPatchHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		var data missionPatchData
		if err := json.Unmarshal(ctx.Body(), &data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fields := make(map[string]any)

		if data.Name != nil {
			fields["name"] = *data.Name
		}

		if data.Section != nil {
			fields["section"] = *data.Section
		}

		if data.Type != nil {
			fields["type"] = *data.Type
		}

		if data.Status != nil {
			fields["status"] = *data.Status
		}

		if data.Origin != nil {
			fields["origin"] = *data.Origin
		}

		if data.ScheduledStart != nil {
			fields["scheduled_start"] = *data.ScheduledStart
		}

		if data.ScheduledEnd != nil {
			fields["scheduled_end"] = data.ScheduledEnd
		}

		if data.ActualEnd != nil {
			fields["actual_end"] = data.ActualEnd
		}

		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
		}

		if err := app.missions.Update(id, fields); err != nil {
			return err
		}

		m, err := app.missions.Get(id)
		if err != nil {
			return err
		}

		return ctx.JSON(m)
	}
}

func getMissionDeleteHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		if err := app.missions.Delete(id); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}
