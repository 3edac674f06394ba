// Package runtimeapi names every symbol the generated Zig source is
// allowed to reference in the Zig runtime support library. The runtime
// library itself is an external collaborator (SPEC_FULL.md Sec 6.4) --
// this package lets the emitter refer to these names as constants rather
// than free-floating string literals, the same discipline the teacher's
// gen_go.go applies to its own fixed set of spliced helper symbols. A
// few emitter sites (comprehension and set containers, BigInt literals)
// still spell their runtime symbol inline.
package runtimeapi

// BigInt arithmetic. Every BigInt binary op returns a Zig error union
// (SPEC_FULL.md Sec 4.7's try/catch unreachable discipline).
const (
	BigIntAdd      = "BigInt.add"
	BigIntSub      = "BigInt.sub"
	BigIntMul      = "BigInt.mul"
	BigIntDiv      = "BigInt.div"
	BigIntMod      = "BigInt.mod"
	BigIntPow      = "BigInt.pow"
	BigIntNeg      = "BigInt.neg"
	BigIntCompare  = "BigInt.compare"
	BigIntFromI64  = "BigInt.fromI64"
	BigIntFromF64  = "BigInt.fromF64"
	BigIntToString = "BigInt.toString"
)

// Scalar numeric helpers routing Python-semantics division/modulo into
// Zig's own operators (SPEC_FULL.md Sec 4.7).
const (
	DivideFloat       = "divideFloat"
	DivideInt         = "divideInt"
	ModuloInt         = "moduloInt"
	ParseIntToBigInt  = "parseIntToBigInt"
)

// Truthiness, string, and generic object helpers.
const (
	PyTruthy   = "pyTruthy"
	StrRepeat  = "strRepeat"
	Concat     = "concat"
	PyObjEqInt = "pyObjEqInt"
	PyObjToInt = "pyObjToInt"
)

// PyDict is the runtime-keyed dictionary type and its method set.
const (
	PyDictCreate    = "PyDict.create"
	PyDictCreateInt = "PyDict.createInt"
	PyDictSet       = "PyDict.set"
	PyDictGet       = "PyDict.get"
)

// Numpy-style dense array primitives.
const (
	ArrayMatmul        = "matmul"
	ArrayTranspose     = "transpose"
	ArrayGetIndex       = "getIndex"
	ArrayGetIndex2D     = "getIndex2D"
	ArrayGetRow         = "getRow"
	ArrayGetColumn      = "getColumn"
	ArraySlice1D        = "slice1D"
	ArrayCompareArrays  = "compareArrays"
	ArrayCompareScalar  = "compareScalar"
	ArrayBooleanIndex   = "booleanIndex"
	ArrayExtractArray   = "extractArray"
)

// Unittest-mirroring namespace used when lowering `assert`/test-style calls.
const (
	UnittestAssertEqual   = "unittest.assertEqual"
	UnittestAssertTrue    = "unittest.assertTrue"
	UnittestAssertFalse   = "unittest.assertFalse"
	UnittestAssertRaises  = "unittest.assertRaises"
)

// BigInt bitwise/shift operations and the fromInt promotion adapter
// (SPEC_FULL.md Sec 4.7): a large left-shift forces BigInt routing even
// when neither operand started out BigInt-typed, so the left operand
// must be promoted through fromInt before the shift can be dispatched.
const (
	BigIntShl     = "BigInt.shl"
	BigIntShr     = "BigInt.shr"
	BigIntAnd     = "BigInt.bitAnd"
	BigIntOr      = "BigInt.bitOr"
	BigIntXor     = "BigInt.bitXor"
	BigIntFromInt = "BigInt.fromInt"
)

// Type-dispatched comparison and containment helpers (SPEC_FULL.md Sec 4.8).
const (
	StrEq              = "strEq"
	StrContains        = "strContains"
	ListContainsScalar = "listContainsScalar"
	ListContainsString = "listContainsString"
)

// Container subscript/slice helpers (SPEC_FULL.md Sec 4.9).
const (
	GetIndex         = "getIndex"
	ListCheckedIndex = "listCheckedIndex"
	StringCharSlice  = "stringCharSlice"
	Slice1D          = "slice1D"
	SliceStepped     = "sliceStepped"
)

// Value-to-string formatting used when a dict literal's values widen to
// String (SPEC_FULL.md Sec 4.5, Sec 8 boundary behaviours).
const (
	FormatInt  = "formatInt"
	FormatBool = "formatBool"
	FormatNone = "formatNone"
	DupString  = "dupString"
)

// Comptime-vs-runtime composite literal construction (SPEC_FULL.md Sec 4.5).
const (
	ListFromConst = "listFromConst"
	ListNew       = "listNew"
	SetNew        = "setNew"
)
