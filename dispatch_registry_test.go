package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdlibDispatchRegistryKnowsMathSqrt(t *testing.T) {
	r := NewStdlibDispatchRegistry()
	b, ok := r.Lookup("math", "sqrt")
	require.True(t, ok)
	assert.Equal(t, "@sqrt", b.RuntimeName)
	assert.False(t, b.NeedsAllocator)
}

func TestStdlibDispatchRegistryIsClosed(t *testing.T) {
	r := NewStdlibDispatchRegistry()
	_, ok := r.Lookup("os", "remove")
	assert.False(t, ok, "unregistered module/function pairs must not resolve")
}

func TestStdlibDispatchRegistryNumpyArrayNeedsAllocator(t *testing.T) {
	r := NewStdlibDispatchRegistry()
	b, ok := r.Lookup("numpy", "array")
	require.True(t, ok)
	assert.True(t, b.NeedsAllocator)
	assert.True(t, b.ReturnsError)
}
