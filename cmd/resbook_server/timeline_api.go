package main

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/avdonin/resbook/internal/service"
)

// timelineBatch is the wire form of one reconciliation request. AutoFix
// defaults to true when omitted.
type timelineBatch[C any, P any] struct {
	Creates []C    `json:"creates"`
	Updates []P    `json:"updates"`
	Deletes []uint `json:"deletes"`
	AutoFix *bool  `json:"auto_fix"`
}

type switchRequest[C any] struct {
	ResourceID uint `json:"resource_id"`
	Data       C    `json:"data"`
}

func addTimelineAPI[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	f *fiber.App, svc *service.BookingService[E, C, P],
) {
	rt := string(svc.ResourceType())

	f.Get("/mission/:id/timeline/"+rt, getTimelineHandler(svc))
	f.Put("/mission/:id/timeline/"+rt, getTimelineUpdateHandler(svc))
	f.Post("/mission/:id/switch/"+rt, getSwitchHandler(svc))
	f.Post("/mission/:id/event/"+rt, getEventCreateHandler(svc))
	f.Patch("/event/"+rt+"/:id", getEventUpdateHandler(svc))
	f.Delete("/event/"+rt+"/:id", getEventDeleteHandler(svc))
}

func getTimelineHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		missionID, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		events, err := svc.Timeline(ctx.Context(), missionID)
		if err != nil {
			return err
		}

		return ctx.JSON(events)
	}
}

func getTimelineUpdateHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		missionID, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		var batch timelineBatch[C, P]
		if err := json.Unmarshal(ctx.Body(), &batch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		autoFix := true
		if batch.AutoFix != nil {
			autoFix = *batch.AutoFix
		}

		if err := svc.UpdateTimeline(ctx.Context(), missionID, batch.Creates, batch.Updates, batch.Deletes, autoFix); err != nil {
			return err
		}

		timelineUpdatesMetric.WithLabelValues(string(svc.ResourceType())).Inc()

		events, err := svc.Timeline(ctx.Context(), missionID)
		if err != nil {
			return err
		}

		return ctx.JSON(events)
	}
}

func getSwitchHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		missionID, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		var req switchRequest[C]
		if err := json.Unmarshal(ctx.Body(), &req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.ResourceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "resource_id is required")
		}

		ev, err := svc.SwitchResource(ctx.Context(), missionID, req.ResourceID, req.Data)
		if err != nil {
			return err
		}

		switchesMetric.WithLabelValues(string(svc.ResourceType())).Inc()

		return ctx.JSON(ev)
	}
}

func getEventCreateHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		missionID, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		var data C
		if err := json.Unmarshal(ctx.Body(), &data); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ev, err := svc.CreateEvent(ctx.Context(), missionID, data)
		if err != nil {
			return err
		}

		return ctx.Status(fiber.StatusCreated).JSON(ev)
	}
}

func getEventUpdateHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		var patch P
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ev, err := svc.UpdateEvent(ctx.Context(), id, patch)
		if err != nil {
			return err
		}

		return ctx.JSON(ev)
	}
}

func getEventDeleteHandler[E service.BookingEvent[E], C service.CreatePayload[E], P service.UpdatePayload[E]](
	svc *service.BookingService[E, C, P],
) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return err
		}

		if err := svc.DeleteEvent(ctx.Context(), id); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func pathID(ctx *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params(name), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "bad id")
	}

	return uint(id), nil
}
