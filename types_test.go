package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidenInvariants(t *testing.T) {
	samples := []T{
		TBottom, TInt, TFloat, TBool, TNone, TUSize, TBigInt, TUnknown,
		NewTList(TInt), NewTList(TFloat), NewTDict(NewTString(StringStatic), TInt),
		NewTSet(TInt), NewTString(StringStatic), NewTString(StringRuntime),
		NewTTuple([]T{TInt, TFloat}), NewTClassInstance("Counter"),
	}

	for _, a := range samples {
		for _, b := range samples {
			// invariant 2 (spec.md Sec 8): commutative
			require.Equal(t, Widen(a, b).String(), Widen(b, a).String(),
				"widen(%s,%s) != widen(%s,%s)", a, b, b, a)
		}
		// invariant 2: idempotent
		assert.Equal(t, a.String(), Widen(a, a).String())
		// invariant 2: Bottom is identity
		assert.Equal(t, a.String(), Widen(TBottom, a).String())
	}
}

func TestWidenNumericPromotion(t *testing.T) {
	assert.Equal(t, TFloat, Widen(TInt, TFloat))
	assert.Equal(t, TInt, Widen(TInt, TBool))
	assert.Equal(t, TBigInt, Widen(TBigInt, TInt))
	assert.Equal(t, TBigInt, Widen(TBigInt, TFloat))
}

func TestWidenContainersPointwise(t *testing.T) {
	got := Widen(NewTList(TInt), NewTList(TFloat))
	lst, ok := got.(TList)
	require.True(t, ok)
	assert.Equal(t, TFloat, lst.Elem)
}

func TestWidenIncompatibleFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, TUnknown, Widen(NewTString(StringStatic), TInt))
}

func TestWidenNoneAgainstScalarIsUnknown(t *testing.T) {
	assert.Equal(t, TUnknown, Widen(TInt, TNone))
}

func TestWidenNoneAgainstContainerKeepsContainer(t *testing.T) {
	got := Widen(NewTList(TInt), TNone)
	assert.Equal(t, "list(int)", got.String())
}
