package ioutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortNatural(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric runs by value",
			input: []string{"ep1.mp4", "ep10.mp4", "ep2.mp4"},
			want:  []string{"ep1.mp4", "ep2.mp4", "ep10.mp4"},
		},
		{
			name:  "season and episode",
			input: []string{"S02E01.mkv", "S01E10.mkv", "S01E02.mkv"},
			want:  []string{"S01E02.mkv", "S01E10.mkv", "S02E01.mkv"},
		},
		{
			name:  "nested paths",
			input: []string{"/tv/s10/e1", "/tv/s2/e3", "/tv/s2/e10"},
			want:  []string{"/tv/s2/e3", "/tv/s2/e10", "/tv/s10/e1"},
		},
		{
			name:  "prefix sorts first",
			input: []string{"ep1a", "ep1"},
			want:  []string{"ep1", "ep1a"},
		},
		{
			name:  "numbers longer than int64",
			input: []string{"x123456789012345678901", "x99999999999999999999"},
			want:  []string{"x99999999999999999999", "x123456789012345678901"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.input...)
			SortNatural(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareNatural_TotalOrder(t *testing.T) {
	assert.Equal(t, 0, CompareNatural("ep01", "ep01"))
	assert.Equal(t, -1, CompareNatural("ep1", "ep01"))
	assert.Equal(t, 1, CompareNatural("ep01", "ep1"))
	assert.True(t, NaturalLess("ep9", "ep10"))
	assert.False(t, NaturalLess("ep10", "ep9"))
}
