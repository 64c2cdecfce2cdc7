package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{1, 20, 1, 20},
		{0, 20, 1, 20},
		{-3, 5, 1, 5},
		{2, 0, 2, 1},
		{2, -10, 2, 1},
		{4, 101, 4, 100},
		{4, 100, 4, 100},
		{math.MaxInt, 2, MaxPage, 2},
		{math.MaxInt/2 + 1, 100, MaxPage, 100},
	}

	for _, tt := range tests {
		page, perPage := Clamp(tt.page, tt.perPage)
		assert.Equal(t, tt.wantPage, page, "page for %d/%d", tt.page, tt.perPage)
		assert.Equal(t, tt.wantPerPage, perPage, "per_page for %d/%d", tt.page, tt.perPage)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 5, Offset(2, 5))
	assert.Equal(t, 5, Page[string]{Page: 2, PerPage: 5}.Offset())
}

func TestOffsetNeverNegative(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / 2, MaxPage + 1} {
		for _, perPage := range []int{1, 2, MaxPerPage, MaxPerPage + 50} {
			p, pp := Clamp(page, perPage)
			assert.GreaterOrEqual(t, Offset(p, pp), 0, "page=%d per_page=%d", page, perPage)
		}
	}
}
