package domain

import (
	"fmt"
	"math"
	"strings"
)

// SortOrder is the direction in which listings are ordered by UpdatedAt.
type SortOrder string

// Supported sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder parses a case-insensitive sort order. An empty string
// yields the zero SortOrder so callers can apply their own default.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(s)) {
	case "":
		return "", nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("%w: sort must be asc or desc", ErrValidation)
	}
}

// ListOptions controls filtering, ordering, and paging of a listing.
// Zero values mean "not supplied".
type ListOptions struct {
	Page   int
	Limit  int
	Filter string
	Sort   SortOrder
}

// Offset returns the number of items to skip. A page is only meaningful
// together with a limit. Offsets that do not fit in an int saturate at
// math.MaxInt.
func (o ListOptions) Offset() int {
	if o.Page <= 1 || o.Limit <= 0 {
		return 0
	}
	if o.OffsetOverflows() {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// OffsetOverflows reports whether (Page-1)*Limit exceeds math.MaxInt.
func (o ListOptions) OffsetOverflows() bool {
	if o.Page <= 1 || o.Limit <= 0 {
		return false
	}
	return o.Page-1 > math.MaxInt/o.Limit
}

// Bounded reports whether the listing is capped at Limit items.
func (o ListOptions) Bounded() bool {
	return o.Limit > 0
}

// WithDefaultSort returns a copy of o that uses order when no sort was supplied.
func (o ListOptions) WithDefaultSort(order SortOrder) ListOptions {
	if o.Sort == "" {
		o.Sort = order
	}
	return o
}

// Matches reports whether content satisfies the filter. Matching is a
// case-sensitive substring test.
func (o ListOptions) Matches(content string) bool {
	return o.Filter == "" || strings.Contains(content, o.Filter)
}

// Window applies Offset and Limit to a listing of n items and returns the
// resulting [start, end) bounds.
func (o ListOptions) Window(n int) (start, end int) {
	start = min(max(o.Offset(), 0), n)
	end = n
	if o.Bounded() && o.Limit < n-start {
		end = start + o.Limit
	}
	return start, end
}
