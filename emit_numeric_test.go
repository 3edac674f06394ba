package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmitter() *Emitter {
	return NewEmitter(NewRegistries(), &AllocNeedResult{Needs: map[string]bool{}}, NewConfig())
}

func TestEmitBinOpRoutesDivisionThroughRuntimeHelper(t *testing.T) {
	e := newTestEmitter()
	out, err := e.emitExpr(NewBinOp(Range{}, OpDiv, nameExpr("a"), nameExpr("b")))
	require.NoError(t, err)
	assert.Contains(t, out, "divideFloat(a, b)")
}

func TestEmitBinOpRoutesFloorDivAndModThroughRuntimeHelpers(t *testing.T) {
	e := newTestEmitter()
	out, err := e.emitExpr(NewBinOp(Range{}, OpFloorDiv, nameExpr("a"), nameExpr("b")))
	require.NoError(t, err)
	assert.Contains(t, out, "divideInt(a, b)")

	out, err = e.emitExpr(NewBinOp(Range{}, OpMod, nameExpr("a"), nameExpr("b")))
	require.NoError(t, err)
	assert.Contains(t, out, "moduloInt(a, b)")
}

func TestEmitBinOpRoutesBigIntOperandsThroughBigIntFuncs(t *testing.T) {
	e := newTestEmitter()
	big := &Constant{Kind: ConstBigInt, Str: "99999999999999999999"}
	out, err := e.emitExpr(NewBinOp(Range{}, OpAdd, big, nameExpr("b")))
	require.NoError(t, err)
	assert.Contains(t, out, "BigInt.add")
	assert.Contains(t, out, "try")
}

func TestEmitBinOpPlainAdditionUsesNativeOperator(t *testing.T) {
	e := newTestEmitter()
	out, err := e.emitExpr(NewBinOp(Range{}, OpAdd, nameExpr("a"), nameExpr("b")))
	require.NoError(t, err)
	assert.Equal(t, "(a + b)", out)
}

func TestEmitCompareChainedProducesConjunction(t *testing.T) {
	e := newTestEmitter()
	cmp := &Compare{
		Left:        nameExpr("a"),
		Ops:         []CompareOpKind{CmpLt, CmpLt},
		Comparators: []Expr{nameExpr("b"), nameExpr("c")},
	}
	out, err := e.emitExpr(cmp)
	require.NoError(t, err)
	assert.Equal(t, "((a < b) and (b < c))", out)
}

func TestEmitCompareEqualityRoutesThroughRuntimeHelper(t *testing.T) {
	e := newTestEmitter()
	cmp := &Compare{Left: nameExpr("a"), Ops: []CompareOpKind{CmpEq}, Comparators: []Expr{nameExpr("b")}}
	out, err := e.emitExpr(cmp)
	require.NoError(t, err)
	assert.Equal(t, "pyObjEqInt(a, b)", out)
}
