package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":    "{field} is required",
	"required_if": "{field} is required when {param}",
	"gte":         "{field} must be at least {param}",
	"lte":         "{field} must be at most {param}",
	"min":         "{field} must be at least {param}",
	"max":         "{field} must be at most {param}",
	"oneof":       "{field} must be one of {param}",
	"numeric":     "{field} must contain digits only",
	"datetime":    "{field} must be a date in {param} format",
	"timeofday":   "{field} must be a time of day in HH:MM format",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not exceed {param} MB",
}

// message renders the first failed rule. Field names are the json names.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		msg := strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl)

		return strings.TrimSpace(msg)
	}

	return valErrors.Error()
}
