package pyzc

import "fmt"

// StringMode distinguishes string values that can live as borrowed
// compile-time constants from ones that must be heap-owned at runtime
// (spec.md Sec 3.1).
type StringMode int

const (
	StringStatic StringMode = iota
	StringRuntime
)

// T is the inferred type lattice (spec.md Sec 3.1). It is modelled as a
// closed set of concrete struct types behind a marker interface, the way
// the teacher's value.go models its Value variants, rather than one struct
// with a discriminant field -- a type switch over T gives the same
// exhaustiveness grammar_ast.go's AstNode hierarchy gives over nodes.
type T interface {
	typeTag() string
	String() string
}

type tBase struct{ tag string }

func (t tBase) typeTag() string { return t.tag }
func (t tBase) String() string  { return t.tag }

// Scalars and the two lattice extremes.
var (
	TUnknown = tBase{"unknown"}
	TInt     = tBase{"int"}
	TFloat   = tBase{"float"}
	TBool    = tBase{"bool"}
	TNone    = tBase{"none"}
	TUSize   = tBase{"usize"}
	TBigInt  = tBase{"bigint"}
	TBottom  = tBase{"bottom"}
	// Library-recognized opaque scalars (spec.md Sec 3.1).
	TNumpyArray = tBase{"numpy_array"}
	TBoolArray  = tBase{"bool_array"}
	TDataFrame  = tBase{"dataframe"}
	TPath       = tBase{"path"}
)

// TString is the String{mode} case.
type TString struct {
	tBase
	Mode StringMode
}

func NewTString(mode StringMode) TString {
	return TString{tBase: tBase{"string"}, Mode: mode}
}

func (t TString) String() string {
	if t.Mode == StringStatic {
		return "string(static)"
	}
	return "string(runtime)"
}

// TList is List(T).
type TList struct {
	tBase
	Elem T
}

func NewTList(elem T) TList { return TList{tBase: tBase{"list"}, Elem: elem} }
func (t TList) String() string { return fmt.Sprintf("list(%s)", t.Elem) }

// TDict is Dict{key,value}.
type TDict struct {
	tBase
	Key   T
	Value T
}

func NewTDict(key, value T) TDict {
	return TDict{tBase: tBase{"dict"}, Key: key, Value: value}
}
func (t TDict) String() string { return fmt.Sprintf("dict(%s,%s)", t.Key, t.Value) }

// TTuple is Tuple([T]) -- fixed-length, positional.
type TTuple struct {
	tBase
	Elems []T
}

func NewTTuple(elems []T) TTuple { return TTuple{tBase: tBase{"tuple"}, Elems: elems} }
func (t TTuple) String() string  { return fmt.Sprintf("tuple(%d)", len(t.Elems)) }

// TSet is Set(T).
type TSet struct {
	tBase
	Elem T
}

func NewTSet(elem T) TSet    { return TSet{tBase: tBase{"set"}, Elem: elem} }
func (t TSet) String() string { return fmt.Sprintf("set(%s)", t.Elem) }

// TClassInstance is ClassInstance(name).
type TClassInstance struct {
	tBase
	Name string
}

func NewTClassInstance(name string) TClassInstance {
	return TClassInstance{tBase: tBase{"class_instance"}, Name: name}
}
func (t TClassInstance) String() string { return "instance(" + t.Name + ")" }

// TClosure is Closure(struct_name) -- an instance of a synthesized
// capturing struct (spec.md Sec 4.6).
type TClosure struct {
	tBase
	StructName string
}

func NewTClosure(structName string) TClosure {
	return TClosure{tBase: tBase{"closure"}, StructName: structName}
}
func (t TClosure) String() string { return "closure(" + t.StructName + ")" }

// IsScalar reports whether t is one of Int/Float/Bool/None/USize/BigInt.
func IsScalar(t T) bool {
	switch t {
	case TInt, TFloat, TBool, TNone, TUSize, TBigInt:
		return true
	}
	return false
}

func isNumeric(t T) bool {
	return t == TInt || t == TFloat || t == TUSize || t == TBigInt
}

// Widen computes the least upper bound of a and b under spec.md Sec 3.1's
// rules. It is total, commutative and idempotent, and treats TBottom as
// the identity element (tested exhaustively in types_test.go against
// spec.md Sec 8 invariant 2).
func Widen(a, b T) T {
	if a == TBottom {
		return b
	}
	if b == TBottom {
		return a
	}
	if typesEqual(a, b) {
		return a
	}

	// Scalar pair rules are checked in both orders so they stay correct
	// regardless of argument position (widen must be commutative).
	switch {
	case hasPair(a, b, TInt, TFloat):
		return TFloat
	case hasPair(a, b, TInt, TBool):
		return TInt
	case a == TBigInt && isNumeric(b):
		return TBigInt
	case b == TBigInt && isNumeric(a):
		return TBigInt
	case hasPair(a, b, TUSize, TInt):
		return TInt
	case hasPair(a, b, TUSize, TFloat):
		return TFloat
	}

	// any scalar widen None = Unknown, unless one side is already an
	// optional-shaped container (lists/dicts/sets already express
	// emptiness without needing an Option wrapper, so they pass through).
	if a == TNone || b == TNone {
		other := a
		if other == TNone {
			other = b
		}
		if isContainer(other) {
			return other
		}
		return TUnknown
	}

	if al, ok := a.(TList); ok {
		if bl, ok := b.(TList); ok {
			return NewTList(Widen(al.Elem, bl.Elem))
		}
	}
	if ad, ok := a.(TDict); ok {
		if bd, ok := b.(TDict); ok {
			return NewTDict(Widen(ad.Key, bd.Key), Widen(ad.Value, bd.Value))
		}
	}
	if as, ok := a.(TSet); ok {
		if bs, ok := b.(TSet); ok {
			return NewTSet(Widen(as.Elem, bs.Elem))
		}
	}
	if at, ok := a.(TTuple); ok {
		if bt, ok := b.(TTuple); ok && len(at.Elems) == len(bt.Elems) {
			out := make([]T, len(at.Elems))
			for i := range out {
				out[i] = Widen(at.Elems[i], bt.Elems[i])
			}
			return NewTTuple(out)
		}
	}
	if as, ok := a.(TString); ok {
		if bs, ok := b.(TString); ok {
			if as.Mode == bs.Mode {
				return as
			}
			return NewTString(StringRuntime)
		}
	}

	// Incompatible pairs widen to Unknown (spec.md Sec 3.1).
	return TUnknown
}

func isContainer(t T) bool {
	switch t.(type) {
	case TList, TDict, TSet, TTuple:
		return true
	}
	return false
}

func typesEqual(a, b T) bool {
	// TTuple's String() only shows the length, so tuples compare element-wise.
	if at, ok := a.(TTuple); ok {
		bt, ok := b.(TTuple)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !typesEqual(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	}
	return a.String() == b.String() && fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// hasPair reports whether {a,b} == {x,y} regardless of order, letting the
// scalar-pair rules in Widen stay commutative without a fragile canonical
// ordering pass.
func hasPair(a, b, x, y T) bool {
	return (a == x && b == y) || (a == y && b == x)
}
