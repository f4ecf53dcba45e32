package repository

import (
	"testing"

	"athar/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, domain.DefaultPageSize},
		{-3, 5, 1, 5},
		{2, 1000, 2, domain.MaxPageSize},
		{4, 10, 4, 10},
	}
	for _, c := range cases {
		p, l := NormalizePage(c.page, c.limit)
		assert.Equal(t, c.wantPage, p)
		assert.Equal(t, c.wantLimit, l)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 0, Offset(0, 20))
	assert.Equal(t, 40, Offset(3, 20))
}
