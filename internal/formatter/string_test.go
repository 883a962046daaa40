package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	got, err := FormatPhone("+2348012345678", "")
	assert.NoError(t, err)
	assert.Equal(t, "+2348012345678", got)

	got, err = FormatPhone("080 1234 5678", "ng")
	assert.NoError(t, err)
	assert.Equal(t, "+2348012345678", got)

	_, err = FormatPhone("12345", "")
	assert.Error(t, err)
}
