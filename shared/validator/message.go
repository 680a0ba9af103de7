package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"notblank":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"gt":          "{field} must be greater than {param}",
		"gtfield":     "{field} must be after {param}",
		"oneof":       "{field} must be one of {param}",
		"enum":        "{field} is not a valid value",
		"max":         "{field} must be at most {param} characters",
		"min":         "{field} must be at least {param}",
		"email":       "{field} must be a valid email address",
		"uuid":        "{field} must be a valid id",
		"url":         "{field} must be a valid url",
		"mimetypes":   "{field} must be one of {param}",
		"maxfilesize": "{field} must not exceed {param} MB",
	}
)

// message renders the first validation error of err.
func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
				errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
