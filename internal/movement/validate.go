package movement

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxDescriptionLength = 200

// validate checks every field rule independently and collects all failures,
// so a client sees the full picture in one round trip.
func validate(m *Movement, now time.Time) error {
	fields := make(map[string]string)

	if strings.TrimSpace(m.Description) == "" {
		fields["description"] = "must not be empty"
	} else if utf8.RuneCountInString(m.Description) > maxDescriptionLength {
		fields["description"] = "must be at most 200 characters"
	}

	if !m.Amount.IsPositive() {
		fields["amount"] = "must be greater than 0"
	}

	if dateOnly(m.Date).After(dateOnly(now)) {
		fields["date"] = "must not be in the future"
	}

	switch m.Category {
	case CategoryIncome, CategoryExpense:
	default:
		fields["category"] = `must be "income" or "expense"`
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
