package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventvenues/internal/domain"
)

// Text limits for events, in characters.
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 500
	MaxLocationLength    = 50
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type eventText struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=500"`
	Location    string `json:"location" validate:"max=50"`
}

func validateEventText(ctx context.Context, title, description, location string) error {
	return validationError(validate.StructCtx(ctx, eventText{
		Title:       title,
		Description: description,
		Location:    location,
	}))
}

// validationError turns the first failed rule into an InputValidation error.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var vErrors validator.ValidationErrors
	if !errors.As(err, &vErrors) || len(vErrors) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	fe := vErrors[0]
	switch fe.Tag() {
	case "required":
		return domain.InputValidation(fe.Field() + " is required")
	case "max":
		return domain.InputValidation(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	}
	return domain.InputValidation(fe.Field() + " is invalid")
}
