package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name       string
		page, size string
		want       Paging
	}{
		{"kosong pakai default", "", "", Paging{Page: 1, PageSize: 10}},
		{"nilai valid", "3", "25", Paging{Page: 3, PageSize: 25}},
		{"page negatif", "-2", "5", Paging{Page: 1, PageSize: 5}},
		{"size di atas max", "1", "500", Paging{Page: 1, PageSize: 100}},
		{"bukan angka", "abc", "x", Paging{Page: 1, PageSize: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePaging(tt.page, tt.size, DefaultOpts))
		})
	}
}

func TestPagingOffset(t *testing.T) {
	p := Paging{Page: 3, PageSize: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestSafeOrderClause(t *testing.T) {
	cols := map[string]string{"title": "title", "publishedAt": "published_at"}

	assert.Equal(t, "title ASC", SafeOrderClause(cols, "title", "asc", "publishedAt"))
	assert.Equal(t, "published_at DESC", SafeOrderClause(cols, "title; DROP TABLE news", "asc;--", "publishedAt"))
	assert.Equal(t, "published_at DESC", SafeOrderClause(cols, "", "", "publishedAt"))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "nope"} {
		assert.False(t, ParseBool(s), s)
	}
}
