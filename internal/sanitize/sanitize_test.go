package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Who am I", Filename(`Who am I?`))
	assert.Equal(t, "AB", Filename(" A/B. "))
	assert.Equal(t, "Ch 1 Part 2", Filename("Ch 1: Part 2"))
	assert.Equal(t, "tab", Filename("t\tab"))
	assert.Empty(t, Filename("..."))
}
