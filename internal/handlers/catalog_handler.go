package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	tags *services.TagService
}

func NewTagHandler(tags *services.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.tags.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

func (h *TagHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	tag, err := h.tags.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.TagRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	tag, err := h.tags.Create(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (h *TagHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req dto.TagRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	tag, err := h.tags.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.tags.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Attach links a tag to a routine the caller may change.
func (h *TagHandler) Attach(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := paramUUID(c, "tagId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.tags.Attach(c.UserContext(), caller, routineID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TagHandler) Detach(c *fiber.Ctx) error {
	caller, err := authctx.Caller(c)
	if err != nil {
		return unauthorized(c)
	}
	routineID, err := paramUUID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tagID, err := paramUUID(c, "tagId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.tags.Detach(c.UserContext(), caller, routineID, tagID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type LanguageHandler struct {
	languages *services.LanguageService
}

func NewLanguageHandler(languages *services.LanguageService) *LanguageHandler {
	return &LanguageHandler{languages: languages}
}

func (h *LanguageHandler) List(c *fiber.Ctx) error {
	languages, err := h.languages.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(languages)
}

func (h *LanguageHandler) Get(c *fiber.Ctx) error {
	language, err := h.languages.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(language)
}

func (h *LanguageHandler) Create(c *fiber.Ctx) error {
	var req dto.LanguageRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	language, err := h.languages.Create(c.UserContext(), req.Code, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(language)
}
