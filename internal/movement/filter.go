package movement

import (
	"time"

	"github.com/google/uuid"
)

// SortField is a sortable column. Only the values below are accepted; anything
// else falls back to the default ordering.
type SortField string

const (
	SortDate      SortField = "date"
	SortAmount    SortField = "amount"
	SortCreatedAt SortField = "created_at"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListFilter narrows and orders a listing. OwnerID is always set by the
// caller from the authenticated identity, never from client input, and is
// applied before any other filter. An empty Sort means the default ordering:
// date descending, then created_at descending as a stable tie-break.
type ListFilter struct {
	OwnerID  uuid.UUID
	Category *Category
	DateFrom *time.Time
	DateTo   *time.Time
	Sort     SortField
	Order    SortOrder
}

// ParseSort maps user-supplied sort parameters onto the allow-list. Unknown
// fields yield an empty SortField (default ordering); anything but "asc"
// orders descending.
func ParseSort(field, order string) (SortField, SortOrder) {
	var sf SortField

	switch SortField(field) {
	case SortDate, SortAmount, SortCreatedAt:
		sf = SortField(field)
	}

	so := OrderDesc
	if SortOrder(order) == OrderAsc {
		so = OrderAsc
	}

	return sf, so
}
