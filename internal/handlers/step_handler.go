package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StepHandler struct {
	steps        *services.StepService
	translations *services.TranslationService
}

func NewStepHandler(steps *services.StepService, translations *services.TranslationService) *StepHandler {
	return &StepHandler{steps: steps, translations: translations}
}

func (h *StepHandler) List(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	steps, err := h.steps.List(c.UserContext(), caller, routineID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(steps)
}

func (h *StepHandler) Create(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.StepRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	step, err := h.steps.Create(c.UserContext(), caller, routineID, toStepInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(step)
}

func (h *StepHandler) Update(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	stepID, err := paramUUID(c, "stepId")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.StepRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	step, err := h.steps.Update(c.UserContext(), caller, routineID, stepID, toStepInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(step)
}

func (h *StepHandler) Delete(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	stepID, err := paramUUID(c, "stepId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.steps.Delete(c.UserContext(), caller, routineID, stepID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StepHandler) ListTranslations(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	stepID, err := paramUUID(c, "stepId")
	if err != nil {
		return respondError(c, err)
	}

	translations, err := h.translations.List(c.UserContext(), caller, stepID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(translations)
}

func (h *StepHandler) CreateTranslation(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	stepID, err := paramUUID(c, "stepId")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateTranslationRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	translation, err := h.translations.Create(c.UserContext(), caller, stepID, req.LanguageCode, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(translation)
}

func (h *StepHandler) UpdateTranslation(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.UpdateTranslationRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	translation, err := h.translations.Update(c.UserContext(), caller, id, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(translation)
}

func (h *StepHandler) DeleteTranslation(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.translations.Delete(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
