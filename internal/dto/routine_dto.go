package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type StepRequest struct {
	Order        int     `json:"order"`
	SimpleText   string  `json:"simple_text"`
	OriginalText *string `json:"original_text,omitempty"`
	IconKey      *string `json:"icon_key,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
}

func (r StepRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Order, validation.Required, validation.Min(1)),
		validation.Field(&r.SimpleText, validation.Required, validation.Length(1, 2000)),
		validation.Field(&r.IconKey, validation.Length(0, 100)),
		validation.Field(&r.ImageURL, is.URL),
	)
}

type CreateRoutineRequest struct {
	Title               string        `json:"title"`
	Category            string        `json:"category"`
	SimpleDescription   *string       `json:"simple_description,omitempty"`
	OriginalDescription *string       `json:"original_description,omitempty"`
	IsTemplate          bool          `json:"is_template"`
	Steps               []StepRequest `json:"steps"`
}

func (r CreateRoutineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Steps),
	)
}

type UpdateRoutineRequest struct {
	Title               string  `json:"title"`
	Category            string  `json:"category"`
	SimpleDescription   *string `json:"simple_description,omitempty"`
	OriginalDescription *string `json:"original_description,omitempty"`
	IsTemplate          *bool   `json:"is_template,omitempty"`
}

func (r UpdateRoutineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
	)
}
