package mapper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{"nil input returns empty slice", nil, []string{}},
		{"empty input returns empty slice", []int{}, []string{}},
		{"maps in order", []int{3, 1, 2}, []string{"n3", "n1", "n2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapSlice(tt.input, func(i int) string { return fmt.Sprintf("n%d", i) })
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyBy(t *testing.T) {
	type item struct {
		id   uint
		name string
	}
	items := []item{{1, "a"}, {2, "b"}, {1, "c"}}

	byID := KeyBy(items, func(i item) uint { return i.id })

	assert.Len(t, byID, 2)
	assert.Equal(t, "c", byID[1].name)
	assert.Equal(t, "b", byID[2].name)
	assert.Empty(t, KeyBy([]item(nil), func(i item) uint { return i.id }))
}
