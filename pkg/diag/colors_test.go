package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorWrapsAndResets(t *testing.T) {
	out := Color(Red, "boom %d", 1)
	assert.Equal(t, Red+"boom 1"+Reset, out)
}

func TestDefaultThemeAssignsErrorToRed(t *testing.T) {
	assert.Equal(t, Red, DefaultTheme.Error)
}
