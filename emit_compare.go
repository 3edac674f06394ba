package pyzc

import (
	"fmt"
	"strings"

	"github.com/pyzc/pyzc/pkg/runtimeapi"
)

// emitCompare lowers a (possibly chained) comparison to a conjunction of
// pairwise Zig comparisons, short-circuiting left-to-right the way
// Python's chained comparisons do (spec.md Sec 4.8): `a < b < c` becomes
// `(a < b) and (b < c)`. Each operand's text is generated once and
// reused, so a middle operand appears twice in the output and is
// evaluated by both comparisons it takes part in.
func (e *Emitter) emitCompare(v *Compare) (string, error) {
	if len(v.Ops) != len(v.Comparators) {
		return "", NewTranslationError(v.Range(), "malformed comparison chain")
	}

	exprs := make([]Expr, 0, len(v.Comparators)+1)
	exprs = append(exprs, v.Left)
	exprs = append(exprs, v.Comparators...)

	operands := make([]string, len(exprs))
	for i, x := range exprs {
		s, err := e.emitExpr(x)
		if err != nil {
			return "", err
		}
		operands[i] = s
	}

	var parts []string
	for i, op := range v.Ops {
		part, err := e.emitSingleCompare(op, exprs[i], operands[i], exprs[i+1], operands[i+1])
		if err != nil {
			return "", NewTranslationError(v.Range(), "%s", err.Error())
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, " and ") + ")", nil
}

func isObjectType(t T) bool {
	switch t.(type) {
	case TClassInstance, TClosure:
		return true
	}
	return false
}

func isStringType(t T) bool {
	_, ok := t.(TString)
	return ok
}

// emitSingleCompare dispatches one comparison operator on the inferred
// types of its two operands (spec.md Sec 4.8): string equality uses
// byte-slice equality, identity between primitives lowers to
// equality/inequality while identity between object-typed values lowers
// to pointer comparison, `in`/`not in` dispatch per container kind, and
// a comparison against `None` where the other side is a known non-None
// type folds to the constant boolean while still reading both operands
// (spec.md Sec 8 boundary: "variables referenced ... are still read to
// satisfy unused-variable checks").
func (e *Emitter) emitSingleCompare(op CompareOpKind, aExpr Expr, a string, bExpr Expr, b string) (string, error) {
	at := e.infer.InferExprScoped(aExpr)
	bt := e.infer.InferExprScoped(bExpr)

	if folded, ok := foldNoneCompare(op, at, bt, a, b); ok {
		return folded, nil
	}

	switch op {
	case CmpLt:
		return fmt.Sprintf("(%s < %s)", a, b), nil
	case CmpLtE:
		return fmt.Sprintf("(%s <= %s)", a, b), nil
	case CmpGt:
		return fmt.Sprintf("(%s > %s)", a, b), nil
	case CmpGtE:
		return fmt.Sprintf("(%s >= %s)", a, b), nil

	case CmpIs, CmpIsNot:
		var expr string
		if isObjectType(at) || isObjectType(bt) {
			expr = fmt.Sprintf("(&%s == &%s)", a, b)
		} else {
			expr = fmt.Sprintf("(%s == %s)", a, b)
		}
		if op == CmpIsNot {
			expr = fmt.Sprintf("(!%s)", expr)
		}
		return expr, nil

	case CmpEq, CmpNotEq:
		var expr string
		switch {
		case isStringType(at) || isStringType(bt):
			expr = fmt.Sprintf("%s(%s, %s)", runtimeapi.StrEq, a, b)
		case isNumeric(at) && isNumeric(bt):
			expr = fmt.Sprintf("(%s == %s)", a, b)
		default:
			expr = fmt.Sprintf("%s(%s, %s)", runtimeapi.PyObjEqInt, a, b)
		}
		if op == CmpNotEq {
			expr = fmt.Sprintf("(!%s)", expr)
		}
		return expr, nil

	case CmpIn, CmpNotIn:
		expr := emitContainment(bt, a, b)
		if op == CmpNotIn {
			expr = fmt.Sprintf("(!%s)", expr)
		}
		return expr, nil
	}
	return "", fmt.Errorf("unsupported comparison operator")
}

// foldNoneCompare implements the Sec 8 boundary behaviour: comparing
// None against a value of a known non-None, non-Unknown type has a
// statically-known boolean result, so it is folded at emit time rather
// than routed through a runtime equality helper that can't express
// "always true"/"always false" for a type it never sees.
func foldNoneCompare(op CompareOpKind, at, bt T, a, b string) (string, bool) {
	if op != CmpEq && op != CmpNotEq && op != CmpIs && op != CmpIsNot {
		return "", false
	}
	aIsNone, bIsNone := at == TNone, bt == TNone
	if aIsNone == bIsNone {
		// both None or neither known-None: nothing to fold.
		return "", false
	}
	known := at
	if aIsNone {
		known = bt
	}
	if known == TUnknown || known == TNone {
		return "", false
	}
	result := "false"
	if op == CmpNotEq || op == CmpIsNot {
		result = "true"
	}
	return fmt.Sprintf("(blk: { _ = %s; _ = %s; break :blk %s; })", a, b, result), true
}

// emitContainment dispatches `in`/`not in` on the right operand's
// inferred container type (spec.md Sec 4.8): string uses substring
// search, list of strings uses an explicit byte-equality loop, list of
// anything else uses scalar search, dict and set use the map/set's own
// `contains`.
func emitContainment(containerType T, needle, container string) string {
	switch ct := containerType.(type) {
	case TString:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.StrContains, container, needle)
	case TList:
		if isStringType(ct.Elem) {
			return fmt.Sprintf("%s(%s, %s)", runtimeapi.ListContainsString, container, needle)
		}
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.ListContainsScalar, container, needle)
	case TDict, TSet:
		return fmt.Sprintf("%s.contains(%s)", container, needle)
	}
	return fmt.Sprintf("%s.contains(%s)", container, needle)
}
