package handlers

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// requestError is a malformed or invalid request detected before any
// workflow runs.
type requestError struct {
	message string
	fields  map[string]string
}

func (e *requestError) Error() string {
	return e.message
}

// bind parses the JSON body into req and runs its validation rules.
func bind(c *fiber.Ctx, req validation.Validatable) error {
	if err := c.BodyParser(req); err != nil {
		return &requestError{message: "Invalid request body"}
	}
	if err := req.Validate(); err != nil {
		return &requestError{message: "Validation failed", fields: dto.FieldErrors(err)}
	}
	return nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &requestError{message: "Invalid " + name}
	}
	return id, nil
}

var statusByKind = map[services.Kind]int{
	services.KindNotFound:           fiber.StatusNotFound,
	services.KindForbidden:          fiber.StatusForbidden,
	services.KindExpired:            fiber.StatusBadRequest,
	services.KindConflict:           fiber.StatusConflict,
	services.KindInvalidCredentials: fiber.StatusUnauthorized,
	services.KindInvalid:            fiber.StatusBadRequest,
}

// respondError writes expected outcomes as JSON. Anything else is returned
// to the application error handler, which logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	if reqErr, ok := err.(*requestError); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: reqErr.message, Fields: reqErr.fields,
		})
	}

	kind, ok := services.KindOf(err)
	if !ok {
		return err
	}
	return c.Status(statusByKind[kind]).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
