package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeIdentEscapesZigKeywords(t *testing.T) {
	assert.Equal(t, "var_", EscapeIdent("var"))
	assert.Equal(t, "error_", EscapeIdent("error"))
	assert.Equal(t, "true_", EscapeIdent("true"))
}

func TestEscapeIdentLeavesOrdinaryNamesAlone(t *testing.T) {
	assert.Equal(t, "counter", EscapeIdent("counter"))
	assert.Equal(t, "self", EscapeIdent("self"))
}
