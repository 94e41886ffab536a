package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateTranslationRequest struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
}

func (r CreateTranslationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LanguageCode, validation.Required, validation.Length(2, 10)),
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
	)
}

type UpdateTranslationRequest struct {
	Text string `json:"text"`
}

func (r UpdateTranslationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.Length(1, 2000)),
	)
}

type TagRequest struct {
	Name string `json:"name"`
}

func (r TagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type LanguageRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r LanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 10), is.UpperCase),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
