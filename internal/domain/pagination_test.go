package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 20}, 0},
		{"third page", PaginationParams{Page: 3, PageSize: 10}, 20},
		{"zero page", PaginationParams{Page: 0, PageSize: 10}, 0},
		{"zero size", PaginationParams{Page: 4, PageSize: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Offset())
		})
	}
}
