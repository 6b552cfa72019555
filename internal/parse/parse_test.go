package parse

import (
	"testing"

	"mangadesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "all", input: "all", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "empty", input: "  ", want: []int{1, 2, 3, 4, 5, 6}},
		{name: "single", input: "4", want: []int{4}},
		{name: "range and single", input: "1-3,5", want: []int{1, 2, 3, 5}},
		{name: "overlap and spaces", input: " 5 , 2-5 ", want: []int{2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageSelection(tt.input, 6)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageSelection_Errors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"a", "1-2-3", "3-1", "x-2", "1-y"} {
		_, err := PageSelection(input, 6)
		assert.Error(t, err, input)
	}

	_, err := PageSelection("5-8", 6)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = PageSelection("0", 6)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}
