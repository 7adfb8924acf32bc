package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ductham08/shorten-links/pkg/response"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Slugs that would shadow service routes can never be allocated.
var reservedSlugs = map[string]bool{
	"api":     true,
	"healthz": true,
	"readyz":  true,
}

func init() {
	validate = validator.New()

	validate.RegisterValidation("slug", validateSlug)
}

func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, response.ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsValidSlug(fl.Field().String())
}

func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func IsReservedSlug(slug string) bool {
	return reservedSlugs[strings.ToLower(slug)]
}

func getErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "slug":
		return fmt.Sprintf("%s can only contain letters, numbers, hyphens, or underscores", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
