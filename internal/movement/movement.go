package movement

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a movement as money coming in or going out.
type Category string

const (
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
)

// ErrNotFound is returned when a movement does not exist or belongs to a
// different owner. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("movement not found")

// Movement represents a single income or expense record owned by a user.
type Movement struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time // calendar date; the time component is ignored
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidationError carries one message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}

	sort.Strings(parts)

	return "validation failed: " + strings.Join(parts, "; ")
}
