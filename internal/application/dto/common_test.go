package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name     string
		in       dto.PageRequest
		wantPage int
		wantSize int
	}{
		{"defaults", dto.PageRequest{}, 1, 10},
		{"página negativa", dto.PageRequest{Page: -3, PageSize: 20}, 1, 20},
		{"pageSize sobre el tope", dto.PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"valores válidos intactos", dto.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantSize, tc.in.PageSize)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := dto.PageRequest{Page: 3, PageSize: 25}
	p.Normalize()
	assert.Equal(t, 50, p.Offset())
}

func TestNewPageMeta(t *testing.T) {
	p := dto.PageRequest{Page: 1, PageSize: 10}
	p.Normalize()

	meta := dto.NewPageMeta(p, 25)
	assert.Equal(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages, "25 elementos en páginas de 10 son 3 páginas")

	empty := dto.NewPageMeta(p, 0)
	assert.Equal(t, 0, empty.TotalPages, "sin elementos no hay páginas")
}
