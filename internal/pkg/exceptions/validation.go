package exceptions

import (
	"billsync-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagsWithParams marks validator tags whose message carries the tag parameter.
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
	"gt":  true,
	"gte": true,
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		tag := firstErr.Tag()
		customMessage, ok := constvars.CustomValidationErrorMessages[tag]
		if !ok {
			customMessage = "is invalid"
		}
		if TagsWithParams[tag] {
			customMessage = strings.Replace(customMessage, "%s", firstErr.Param(), 1)
		}
		return fieldName + " " + customMessage
	}
	return constvars.ErrDevInvalidInput
}
