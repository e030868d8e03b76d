package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/celestiaorg/taskboard/internal/db/models"
)

func requireText(v *ValidationError, field, value string, maxLen int) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		v.Add(field, "this field is required")
	case maxLen > 0 && utf8.RuneCountInString(value) > maxLen:
		v.Add(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return value
}

func requireDueDate(v *ValidationError, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add("due_date", "this field is required")
		return value
	}
	if _, err := models.ParseDueDate(value); err != nil {
		v.Add("due_date", "must be a date in YYYY-MM-DD format")
	}
	return value
}
