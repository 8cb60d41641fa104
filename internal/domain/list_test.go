package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("ASC")
	assert.NoError(t, err)
	assert.Equal(t, SortAsc, order)

	order, err = ParseSortOrder("desc")
	assert.NoError(t, err)
	assert.Equal(t, SortDesc, order)

	order, err = ParseSortOrder("")
	assert.NoError(t, err)
	assert.Equal(t, SortOrder(""), order)

	_, err = ParseSortOrder("sideways")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListOptionsWindow(t *testing.T) {
	tests := []struct {
		name      string
		opts      ListOptions
		n         int
		wantStart int
		wantEnd   int
	}{
		{name: "unbounded", opts: ListOptions{}, n: 25, wantStart: 0, wantEnd: 25},
		{name: "page without limit", opts: ListOptions{Page: 3}, n: 25, wantStart: 0, wantEnd: 25},
		{name: "limit only", opts: ListOptions{Limit: 10}, n: 25, wantStart: 0, wantEnd: 10},
		{name: "second page", opts: ListOptions{Page: 2, Limit: 10}, n: 25, wantStart: 10, wantEnd: 20},
		{name: "partial last page", opts: ListOptions{Page: 3, Limit: 10}, n: 25, wantStart: 20, wantEnd: 25},
		{name: "past the end", opts: ListOptions{Page: 5, Limit: 10}, n: 25, wantStart: 25, wantEnd: 25},
		{name: "huge page", opts: ListOptions{Page: math.MaxInt, Limit: 2}, n: 1, wantStart: 1, wantEnd: 1},
		{name: "huge limit", opts: ListOptions{Page: 1, Limit: math.MaxInt}, n: 3, wantStart: 0, wantEnd: 3},
		{name: "huge page and limit", opts: ListOptions{Page: math.MaxInt, Limit: math.MaxInt}, n: 3, wantStart: 3, wantEnd: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.opts.Window(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestListOptionsOffset(t *testing.T) {
	assert.Equal(t, 0, ListOptions{Page: 4}.Offset())
	assert.Equal(t, 20, ListOptions{Page: 3, Limit: 10}.Offset())
	assert.False(t, ListOptions{Page: 3, Limit: 10}.OffsetOverflows())

	huge := ListOptions{Page: math.MaxInt, Limit: 2}
	assert.True(t, huge.OffsetOverflows())
	assert.Equal(t, math.MaxInt, huge.Offset())
}

func TestListOptionsDefaults(t *testing.T) {
	assert.Equal(t, SortDesc, ListOptions{}.WithDefaultSort(SortDesc).Sort)
	assert.Equal(t, SortAsc, ListOptions{Sort: SortAsc}.WithDefaultSort(SortDesc).Sort)
	assert.True(t, ListOptions{Filter: "go"}.Matches("I like go"))
	assert.False(t, ListOptions{Filter: "Go"}.Matches("I like go"))
	assert.True(t, ListOptions{}.Matches("anything"))
}
