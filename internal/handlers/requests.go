package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// ViewRequest addresses a mounted invoice view.
type ViewRequest struct {
	ViewID string `param:"id" validate:"required,uuid"`
}

// SelectCardRequest defines the DTO for a card selection posted by the dropdown.
type SelectCardRequest struct {
	ViewID string `param:"id" validate:"required,uuid"`
	Card   string `form:"card" validate:"required"`
}
