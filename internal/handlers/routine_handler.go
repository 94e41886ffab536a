package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type RoutineHandler struct {
	routines *services.RoutineService
}

func NewRoutineHandler(routines *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{routines: routines}
}

// List returns the active routines the caller may see. Templates are
// included unless templates=false.
func (h *RoutineHandler) List(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	routines, err := h.routines.List(c.UserContext(), caller, services.ListFilter{
		IncludeTemplates: c.QueryBool("templates", true),
		Search:           c.Query("search"),
		Category:         c.Query("category"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(routines)
}

func (h *RoutineHandler) Get(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	routine, err := h.routines.Get(c.UserContext(), caller, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(routine)
}

func (h *RoutineHandler) Create(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateRoutineRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	in := services.CreateRoutineInput{
		Title:               req.Title,
		Category:            req.Category,
		SimpleDescription:   req.SimpleDescription,
		OriginalDescription: req.OriginalDescription,
		IsTemplate:          req.IsTemplate,
		Steps:               make([]services.StepInput, 0, len(req.Steps)),
	}
	for _, step := range req.Steps {
		in.Steps = append(in.Steps, toStepInput(step))
	}

	routine, err := h.routines.Create(c.UserContext(), caller, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(routine)
}

func (h *RoutineHandler) Update(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateRoutineRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	routine, err := h.routines.Update(c.UserContext(), caller, id, services.UpdateRoutineInput{
		Title:               req.Title,
		Category:            req.Category,
		SimpleDescription:   req.SimpleDescription,
		OriginalDescription: req.OriginalDescription,
		IsTemplate:          req.IsTemplate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(routine)
}

// Delete deactivates the routine.
func (h *RoutineHandler) Delete(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.routines.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toStepInput(req dto.StepRequest) services.StepInput {
	return services.StepInput{
		Order:        req.Order,
		SimpleText:   req.SimpleText,
		OriginalText: req.OriginalText,
		IconKey:      req.IconKey,
		ImageURL:     req.ImageURL,
	}
}
