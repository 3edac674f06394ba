package pyzc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferExprConstants(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	assert.Equal(t, TInt, inf.InferExpr(NewConstant(Range{}, ConstInt)))
	assert.Equal(t, TFloat, inf.InferExpr(NewConstant(Range{}, ConstFloat)))
	assert.Equal(t, TBool, inf.InferExpr(NewConstant(Range{}, ConstBool)))
	assert.Equal(t, TNone, inf.InferExpr(NewConstant(Range{}, ConstNone)))
	assert.Equal(t, TBigInt, inf.InferExpr(&Constant{Kind: ConstBigInt, Str: "1"}))
}

func TestInferExprScopedResolvesRegisteredParam(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	inf.PushScope()
	defer inf.PopScope()
	inf.RegisterParam("x", TFloat)

	assert.Equal(t, TFloat, inf.InferExprScoped(nameExpr("x")))
	// The scope-free variant never sees the registered param.
	assert.Equal(t, TUnknown, inf.InferExpr(nameExpr("x")))
}

func TestUnregisterParamRemovesBinding(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	inf.PushScope()
	defer inf.PopScope()
	inf.RegisterParam("x", TInt)
	inf.UnregisterParam("x")
	assert.Equal(t, TUnknown, inf.InferExprScoped(nameExpr("x")))
}

func TestRecordAssignmentWidensAcrossReassignment(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	inf.PushScope()
	defer inf.PopScope()

	inf.RecordAssignment(nameExpr("x"), NewConstant(Range{}, ConstInt))
	assert.Equal(t, TInt, inf.InferExprScoped(nameExpr("x")))

	inf.RecordAssignment(nameExpr("x"), NewConstant(Range{}, ConstFloat))
	assert.Equal(t, TFloat, inf.InferExprScoped(nameExpr("x")))
}

func TestInferBinOpDivisionAlwaysYieldsFloat(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	div := NewBinOp(Range{}, OpDiv, NewConstant(Range{}, ConstInt), NewConstant(Range{}, ConstInt))
	assert.Equal(t, TFloat, inf.InferExpr(div))
}

func TestInferBinOpLargeConstantShiftForcesBigInt(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	one := NewConstant(Range{}, ConstInt)
	amount := &Constant{Kind: ConstInt, Int: 200}
	shift := NewBinOp(Range{}, OpLShift, one, amount)
	assert.Equal(t, TBigInt, inf.InferExpr(shift))
}

func TestInferBinOpNonConstantShiftForcesBigInt(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	shift := NewBinOp(Range{}, OpLShift, NewConstant(Range{}, ConstInt), nameExpr("n"))
	assert.Equal(t, TBigInt, inf.InferExpr(shift))
}

func TestInferBinOpSmallConstantShiftStaysInt(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	amount := &Constant{Kind: ConstInt, Int: 3}
	shift := NewBinOp(Range{}, OpLShift, NewConstant(Range{}, ConstInt), amount)
	assert.Equal(t, TInt, inf.InferExpr(shift))
}

func TestInferListLiteralWidensIntAndFloat(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	list := &ListExpr{Elts: []Expr{NewConstant(Range{}, ConstInt), NewConstant(Range{}, ConstFloat)}}
	got := inf.InferExpr(list)
	lt, ok := got.(TList)
	assert.True(t, ok)
	assert.Equal(t, TFloat, lt.Elem)
}

func TestInferDictLiteralKeyAndValueTypes(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	dict := &DictExpr{
		Keys:   []Expr{&Constant{Kind: ConstString, Str: "a"}},
		Values: []Expr{NewConstant(Range{}, ConstInt)},
	}
	got := inf.InferExpr(dict)
	dt, ok := got.(TDict)
	assert.True(t, ok)
	assert.True(t, isStringType(dt.Key))
	assert.Equal(t, TInt, dt.Value)
}

func TestInferSubscriptListYieldsElementType(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	inf.PushScope()
	defer inf.PopScope()
	inf.RegisterParam("xs", NewTList(TInt))

	sub := &Subscript{Value: nameExpr("xs"), Slice: SubscriptSlice{Index: NewConstant(Range{}, ConstInt)}}
	assert.Equal(t, TInt, inf.InferExprScoped(sub))
}

func TestInferSubscriptSlicePreservesContainerType(t *testing.T) {
	inf := NewInferrer(NewRegistries())
	inf.PushScope()
	defer inf.PopScope()
	inf.RegisterParam("xs", NewTList(TInt))

	sub := &Subscript{Value: nameExpr("xs"), Slice: SubscriptSlice{IsSlice: true}}
	got := inf.InferExprScoped(sub)
	_, ok := got.(TList)
	assert.True(t, ok)
}

func TestInferCallResolvesRegisteredFunctionReturnType(t *testing.T) {
	regs := NewRegistries()
	regs.Funcs.Register(&FuncSignature{Name: "area", ReturnType: TFloat})
	inf := NewInferrer(regs)

	call := NewCall(Range{}, nameExpr("area"), nil, nil)
	assert.Equal(t, TFloat, inf.InferExpr(call))
}

func TestInferCallResolvesClassConstructorAsInstance(t *testing.T) {
	regs := NewRegistries()
	regs.Classes.RegisterClass("Point", "", nil, nil)
	inf := NewInferrer(regs)

	call := NewCall(Range{}, nameExpr("Point"), nil, nil)
	got := inf.InferExpr(call)
	ci, ok := got.(TClassInstance)
	assert.True(t, ok)
	assert.Equal(t, "Point", ci.Name)
}
