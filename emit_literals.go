package pyzc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyzc/pyzc/pkg/runtimeapi"
)

// emitExpr is the expression half of the visit(node) dispatch (spec.md
// Sec 4.4); it returns the Zig source text for one expression rather
// than writing statements, since expressions nest arbitrarily and are
// composed by their caller (assignment targets, call arguments, etc.)
func (e *Emitter) emitExpr(x Expr) (string, error) {
	switch v := x.(type) {
	case *Constant:
		return e.emitConstant(v)
	case *Name:
		return EscapeIdent(v.Value), nil
	case *BinOp:
		return e.emitBinOp(v)
	case *UnaryOp:
		return e.emitUnaryOp(v)
	case *BoolOp:
		return e.emitBoolOp(v)
	case *Compare:
		return e.emitCompare(v)
	case *Call:
		return e.emitCall(v)
	case *Attribute:
		val, err := e.emitExpr(v.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s", val, EscapeIdent(v.Attr)), nil
	case *Subscript:
		return e.emitSubscript(v)
	case *TupleExpr:
		return e.emitTupleLiteral(v)
	case *ListExpr:
		return e.emitListLiteral(v)
	case *DictExpr:
		return e.emitDictLiteral(v)
	case *SetExpr:
		return e.emitSetLiteral(v)
	case *Lambda:
		return e.emitLambda(v)
	case *IfExpr:
		return e.emitIfExpr(v)
	case *Comp:
		return e.emitComp(v)
	case *Starred:
		return e.emitExpr(v.Value)
	case *Yield:
		return "", NewTranslationError(v.Range(), "generators are not supported by this translator")
	}
	return "", NewTranslationError(x.Range(), "unsupported expression %T", x)
}

func (e *Emitter) emitConstant(c *Constant) (string, error) {
	switch c.Kind {
	case ConstInt:
		return strconv.FormatInt(c.Int, 10), nil
	case ConstBigInt:
		return fmt.Sprintf("%s.%s(%q)", "rt.BigInt", "parse", c.Str), nil
	case ConstFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64), nil
	case ConstBool:
		if c.Bool {
			return "true", nil
		}
		return "false", nil
	case ConstString:
		return e.emitStringLiteral(c.Str)
	case ConstNone:
		return "null", nil
	}
	return "", NewTranslationError(c.Range(), "unsupported constant kind")
}

// emitStringLiteral emits s as a double-quoted string literal, escaped
// with Go's %q rules (which agree with Zig's for quotes, backslashes and
// printable ASCII). It always emits a literal: translate.optimize_literals
// is not consulted and no allocator-backed copy is made.
func (e *Emitter) emitStringLiteral(s string) (string, error) {
	return fmt.Sprintf("%q", s), nil
}

func (e *Emitter) emitTupleLiteral(v *TupleExpr) (string, error) {
	parts := make([]string, len(v.Elts))
	for i, elt := range v.Elts {
		s, err := e.emitExpr(elt)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fmt.Sprintf(".{ %s }", strings.Join(parts, ", ")), nil
}

func firstOr(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return parts[0]
}

// isConstExpr reports whether x is a literal the comptime path can fold
// directly, without needing the runtime-append branch (spec.md Sec 4.5's
// comptime-vs-runtime split).
func isConstExpr(x Expr) bool {
	c, ok := x.(*Constant)
	return ok && c.Kind != ConstBigInt
}

// widenElement casts an Int-typed element to float when the list's
// element type widened to Float (spec.md Sec 4.5, Sec 8 boundary: a list
// literal mixing int and float elements widens every element to float).
func widenElement(elt Expr, eltType T, s string, elemType T) string {
	if elemType == TFloat && eltType == TInt {
		return fmt.Sprintf("@as(f64, @floatFromInt(%s))", s)
	}
	return s
}

// emitListLiteral lowers a list display per spec.md Sec 4.5: when every
// element is a constant and translate.optimize_literals is on, it's
// built with the comptime constructor;
// otherwise it's built by an append loop over an allocator-backed list,
// with any Int element widened to Float when the element type (after
// Widen over all elements) comes out Float.
func (e *Emitter) emitListLiteral(v *ListExpr) (string, error) {
	elemType := T(TBottom)
	for _, elt := range v.Elts {
		elemType = Widen(elemType, e.infer.InferExprScoped(elt))
	}

	allConst := true
	for _, elt := range v.Elts {
		if !isConstExpr(elt) {
			allConst = false
			break
		}
	}

	parts := make([]string, len(v.Elts))
	for i, elt := range v.Elts {
		s, err := e.emitExpr(elt)
		if err != nil {
			return "", err
		}
		parts[i] = widenElement(elt, e.infer.InferExprScoped(elt), s, elemType)
	}

	if allConst && e.cfg.GetBool("translate.optimize_literals") {
		return fmt.Sprintf("%s(%s, &[_]@TypeOf(%s){ %s })",
			runtimeapi.ListFromConst, e.allocatorName(), firstOr(parts, "0"), strings.Join(parts, ", ")), nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("blk: { var __l = %s(%s); ", runtimeapi.ListNew, e.allocatorName()))
	for _, p := range parts {
		b.WriteString(fmt.Sprintf("try __l.append(%s); ", p))
	}
	b.WriteString("break :blk __l; }")
	return b.String(), nil
}

// dictValueIsMixed reports whether a dict literal's (non-unpacking)
// values do not all share one inferred type -- String mixed with Int
// counts, as does Int mixed with Float -- which under spec.md Sec 4.5 /
// Sec 8's boundary behaviour widens every value to String.
func dictValueIsMixed(e *Emitter, v *DictExpr) bool {
	seen := T(TBottom)
	mixed := false
	for i, val := range v.Values {
		if v.Keys[i] == nil {
			continue
		}
		t := e.infer.InferExprScoped(val)
		if seen == TBottom {
			seen = t
			continue
		}
		if !typesEqual(seen, t) {
			mixed = true
		}
	}
	return mixed
}

// formatDictValue converts one value expression to String when the dict
// as a whole decided to widen its values to String (spec.md Sec 8
// boundary: "integers/booleans/none are formatted").
func formatDictValue(e *Emitter, val Expr, s string) string {
	switch e.infer.InferExprScoped(val).(type) {
	case TString:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.DupString, e.allocatorName(), s)
	}
	t := e.infer.InferExprScoped(val)
	switch t {
	case TInt, TFloat, TUSize:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.FormatInt, e.allocatorName(), s)
	case TBool:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.FormatBool, e.allocatorName(), s)
	case TNone:
		return fmt.Sprintf("%s(%s)", runtimeapi.FormatNone, e.allocatorName())
	}
	return s
}

// emitDictLiteral lowers a dict display per spec.md Sec 4.5: the first
// real (non-unpacking) key's inferred type decides whether the map is
// Int-keyed or byte-string-keyed, and values whose inferred types are
// not all the same are each widened to String before insertion.
func (e *Emitter) emitDictLiteral(v *DictExpr) (string, error) {
	intKeyed := false
	for _, k := range v.Keys {
		if k == nil {
			continue
		}
		intKeyed = e.infer.InferExprScoped(k) == TInt
		break
	}
	widenValues := dictValueIsMixed(e, v)

	ctor := runtimeapi.PyDictCreate
	if intKeyed {
		ctor = runtimeapi.PyDictCreateInt
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("blk: { var __d = %s(%s); ", ctor, e.allocatorName()))
	for i := range v.Keys {
		if v.Keys[i] == nil {
			// **other unpacking entry (spec.md Sec 4.5); merged via a
			// runtime helper rather than inline-expanded.
			other, err := e.emitExpr(v.Values[i])
			if err != nil {
				return "", err
			}
			b.WriteString(fmt.Sprintf("__d.mergeFrom(%s); ", other))
			continue
		}
		k, err := e.emitExpr(v.Keys[i])
		if err != nil {
			return "", err
		}
		val, err := e.emitExpr(v.Values[i])
		if err != nil {
			return "", err
		}
		if widenValues {
			val = formatDictValue(e, v.Values[i], val)
		}
		b.WriteString(fmt.Sprintf("try __d.set(%s, %s); ", k, val))
	}
	b.WriteString("break :blk __d; }")
	return b.String(), nil
}

func (e *Emitter) emitSetLiteral(v *SetExpr) (string, error) {
	parts := make([]string, len(v.Elts))
	for i, elt := range v.Elts {
		s, err := e.emitExpr(elt)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fmt.Sprintf("rt.setFromSlice(%s, &[_]@TypeOf(%s){ %s })",
		e.allocatorName(), firstOr(parts, "0"), strings.Join(parts, ", ")), nil
}

func (e *Emitter) emitIfExpr(v *IfExpr) (string, error) {
	test, err := e.emitExpr(v.Test)
	if err != nil {
		return "", err
	}
	body, err := e.emitExpr(v.Body)
	if err != nil {
		return "", err
	}
	orelse, err := e.emitExpr(v.Orelse)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("if (%s) %s else %s", test, body, orelse), nil
}

// emitComp lowers list/dict/set/generator comprehensions to an
// immediately-invoked labelled block expression that builds the
// container imperatively (spec.md Sec 4.5) -- Zig has no comprehension
// syntax of its own.
func (e *Emitter) emitComp(v *Comp) (string, error) {
	var b strings.Builder
	containerInit := map[CompKind]string{
		CompList: "rt.listNew(%s)",
		CompSet:  "rt.setNew(%s)",
		CompDict: "rt.PyDict.create(%s)",
		CompGen:  "rt.listNew(%s)",
	}[v.Kind]
	b.WriteString(fmt.Sprintf("blk: { var __acc = %s; ", fmt.Sprintf(containerInit, e.allocatorName())))

	var emitNested func(gens []Comprehension) error
	emitNested = func(gens []Comprehension) error {
		if len(gens) == 0 {
			switch v.Kind {
			case CompDict:
				k, err := e.emitExpr(v.Key)
				if err != nil {
					return err
				}
				val, err := e.emitExpr(v.Elt)
				if err != nil {
					return err
				}
				b.WriteString(fmt.Sprintf("try __acc.set(%s, %s); ", k, val))
			default:
				elt, err := e.emitExpr(v.Elt)
				if err != nil {
					return err
				}
				b.WriteString(fmt.Sprintf("try __acc.append(%s); ", elt))
			}
			return nil
		}
		g := gens[0]
		target, ok := g.Target.(*Name)
		if !ok {
			return NewTranslationError(v.Range(), "comprehension target must be a simple name")
		}
		iter, err := e.emitExpr(g.Iter)
		if err != nil {
			return err
		}

		elemType := T(TUnknown)
		if lt, ok := e.infer.InferExprScoped(g.Iter).(TList); ok {
			elemType = lt.Elem
		}
		e.infer.RegisterParam(target.Value, elemType)
		defer e.infer.UnregisterParam(target.Value)

		b.WriteString(fmt.Sprintf("for (%s) |%s| { ", iter, EscapeIdent(target.Value)))
		for _, cond := range g.Ifs {
			c, err := e.emitExpr(cond)
			if err != nil {
				return err
			}
			b.WriteString(fmt.Sprintf("if (!(%s)) continue; ", c))
		}
		if err := emitNested(gens[1:]); err != nil {
			return err
		}
		b.WriteString("} ")
		return nil
	}
	if err := emitNested(v.Generators); err != nil {
		return "", err
	}
	b.WriteString("break :blk __acc; }")
	return b.String(), nil
}
