package services

import (
	"strings"
	"unicode/utf8"

	"github.com/builddost/builddost-api/internal/constants"
)

func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, "must be at most %d characters", max)
	}
	return value, nil
}

// requireDescription validates free-text input fed to the generator.
func requireDescription(field, value string) (string, error) {
	return requireText(field, value, constants.MaxDescriptionLength)
}

func checkNameLengths(fields map[string]*string) error {
	for field, value := range fields {
		if err := optionalText(field, value, constants.MaxNameLength); err != nil {
			return err
		}
	}
	return nil
}

func optionalText(field string, value *string, max int) error {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}
