package pyzc

import (
	"fmt"

	"github.com/pyzc/pyzc/pkg/runtimeapi"
)

// emitSubscript lowers `value[index]` and `value[lower:upper:step]`
// (spec.md Sec 4.9's container-dispatch rule) by consulting the
// type-inference pass for the container's own type: list indexing is
// bounds-checked, string indexing yields a one-character slice, dict
// indexing asserts the key is present, tuple indexing requires a
// compile-time-constant index (Zig struct/tuple field access has no
// dynamic-index form -- Open Question resolved in DESIGN.md), and a
// numpy array indexed by a 2-tuple of scalars dispatches to the 2-D
// helper; anything else falls back to the generic runtime getter.
func (e *Emitter) emitSubscript(v *Subscript) (string, error) {
	val, err := e.emitExpr(v.Value)
	if err != nil {
		return "", err
	}
	if v.Slice.IsSlice {
		return e.emitSliceSubscript(v, val)
	}

	containerType := e.infer.InferExprScoped(v.Value)

	if ct, ok := containerType.(TTuple); ok {
		idxConst, isConst := v.Slice.Index.(*Constant)
		if !isConst || idxConst.Kind != ConstInt {
			return "", NewTranslationError(v.Range(), "tuple subscript requires a constant integer index")
		}
		if idxConst.Int < 0 || int(idxConst.Int) >= len(ct.Elems) {
			return "", NewTranslationError(v.Range(), "tuple subscript index out of range")
		}
		return fmt.Sprintf("%s[%d]", val, idxConst.Int), nil
	}

	if tup, ok := v.Slice.Index.(*TupleExpr); ok && containerType == TNumpyArray && len(tup.Elts) == 2 {
		i, err := e.emitExpr(tup.Elts[0])
		if err != nil {
			return "", err
		}
		j, err := e.emitExpr(tup.Elts[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s, %s, %s)", runtimeapi.ArrayGetIndex2D, val, i, j), nil
	}

	idx, err := e.emitExpr(v.Slice.Index)
	if err != nil {
		return "", err
	}

	switch containerType.(type) {
	case TList:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.ListCheckedIndex, val, idx), nil
	case TString:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.StringCharSlice, val, idx), nil
	case TDict:
		return fmt.Sprintf("%s.get(%s).?", val, idx), nil
	}
	if containerType == TNumpyArray {
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.ArrayGetIndex, val, idx), nil
	}
	return fmt.Sprintf("%s(%s, %s)", runtimeapi.GetIndex, val, idx), nil
}

// emitSliceSubscript lowers a slice expression. A non-unit-step slice
// over a string or list lowers to one sliceStepped runtime call that
// receives the allocator; every other slice (unit or omitted step, or
// any step over another container type) lowers to the generic 1-D slice
// helper with the step passed through. No inline loop is emitted, and
// negative bounds are passed to the helpers unchanged.
func (e *Emitter) emitSliceSubscript(v *Subscript, val string) (string, error) {
	lower, err := e.emitOptional(v.Slice.Lower, "0")
	if err != nil {
		return "", err
	}
	upper, err := e.emitOptional(v.Slice.Upper, fmt.Sprintf("%s.len", val))
	if err != nil {
		return "", err
	}

	if v.Slice.Step != nil {
		if !isUnitStepConst(v.Slice.Step) {
			containerType := e.infer.InferExprScoped(v.Value)
			if _, isList := containerType.(TList); isList || isStringType(containerType) {
				step, err := e.emitExpr(v.Slice.Step)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s(%s, %s, %s, %s, %s)",
					runtimeapi.SliceStepped, e.allocatorName(), val, lower, upper, step), nil
			}
		}
	}

	step, err := e.emitOptional(v.Slice.Step, "1")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s, %s, %s, %s)", runtimeapi.Slice1D, val, lower, upper, step), nil
}

// isUnitStepConst reports whether a slice's step expression is the
// compile-time-known constant 1.
func isUnitStepConst(step Expr) bool {
	c, ok := step.(*Constant)
	return ok && c.Kind == ConstInt && c.Int == 1
}

func (e *Emitter) emitOptional(x Expr, fallback string) (string, error) {
	if x == nil {
		return fallback, nil
	}
	return e.emitExpr(x)
}
