package pyzc

// Inferrer implements the structural type-inference pass spec.md Sec 4.1
// describes: a recursive walk over expression nodes that returns a T for
// every node, threading a small stack of per-function local-variable
// type maps so that a scoped lookup never leaks one function's variable
// facts into another's (spec.md Sec 4.1: "infer_expr_scoped ... consults
// the current function's local scope first to avoid cross-function
// pollution of variable-type facts"). The emitter consults it for
// numeric routing, comparisons, literals, subscripts and loop variables;
// call emission (emit_call.go) does not use it.
type Inferrer struct {
	regs   *Registries
	scopes []map[string]T
}

func NewInferrer(regs *Registries) *Inferrer {
	return &Inferrer{regs: regs}
}

// PushScope/PopScope bracket one function body's local-variable facts
// (spec.md Sec 4.1/4.2's per-function scope rule).
func (inf *Inferrer) PushScope() { inf.scopes = append(inf.scopes, map[string]T{}) }

func (inf *Inferrer) PopScope() {
	if len(inf.scopes) == 0 {
		return
	}
	inf.scopes = inf.scopes[:len(inf.scopes)-1]
}

func (inf *Inferrer) currentScope() map[string]T {
	if len(inf.scopes) == 0 {
		return nil
	}
	return inf.scopes[len(inf.scopes)-1]
}

// RegisterParam pushes a lambda or function parameter's type into the
// current scope; UnregisterParam pops it back out once the body that
// used it has been inferred (spec.md Sec 4.1).
func (inf *Inferrer) RegisterParam(name string, t T) {
	if sc := inf.currentScope(); sc != nil {
		sc[name] = t
	}
}

func (inf *Inferrer) UnregisterParam(name string) {
	if sc := inf.currentScope(); sc != nil {
		delete(sc, name)
	}
}

// RecordAssignment updates lhs's tracked type to widen(old, infer(rhs))
// (spec.md Sec 4.1), so a name's type fact accumulates across every
// assignment that reaches it in source order rather than only reflecting
// the most recent one.
func (inf *Inferrer) RecordAssignment(lhs Expr, rhs Expr) {
	name, ok := lhs.(*Name)
	if !ok {
		return
	}
	sc := inf.currentScope()
	if sc == nil {
		return
	}
	rhsType := inf.InferExprScoped(rhs)
	if old, ok := sc[name.Value]; ok {
		sc[name.Value] = Widen(old, rhsType)
		return
	}
	sc[name.Value] = rhsType
}

// InferExpr is the scope-free structural recursion (spec.md Sec 4.1): it
// never consults a function-local scope, the form needed for class-field
// and module-level initializer inference where there is no enclosing
// function frame.
func (inf *Inferrer) InferExpr(x Expr) T {
	return inf.infer(x, false)
}

// InferExprScoped consults the current function scope for Name lookups
// before falling back to Unknown (spec.md Sec 4.1) -- this is the
// variant the emitter calls while walking a function body.
func (inf *Inferrer) InferExprScoped(x Expr) T {
	return inf.infer(x, true)
}

func (inf *Inferrer) infer(x Expr, scoped bool) T {
	if x == nil {
		return TUnknown
	}
	switch v := x.(type) {
	case *Constant:
		return inferConstant(v)
	case *Name:
		if scoped {
			for i := len(inf.scopes) - 1; i >= 0; i-- {
				if t, ok := inf.scopes[i][v.Value]; ok {
					return t
				}
			}
		}
		return TUnknown
	case *BinOp:
		return inf.inferBinOp(v, scoped)
	case *UnaryOp:
		return inf.inferUnaryOp(v, scoped)
	case *BoolOp:
		return TBool
	case *Compare:
		return inf.inferCompare(v, scoped)
	case *Call:
		return inf.inferCall(v, scoped)
	case *Attribute:
		return inf.inferAttribute(v, scoped)
	case *Subscript:
		return inf.inferSubscript(v, scoped)
	case *TupleExpr:
		elems := make([]T, len(v.Elts))
		for i, e := range v.Elts {
			elems[i] = inf.infer(e, scoped)
		}
		return NewTTuple(elems)
	case *ListExpr:
		t := T(TBottom)
		for _, e := range v.Elts {
			t = Widen(t, inf.infer(e, scoped))
		}
		if t == TBottom {
			t = TUnknown
		}
		return NewTList(t)
	case *DictExpr:
		kt, vt := T(TBottom), T(TBottom)
		for i := range v.Keys {
			if v.Keys[i] == nil {
				continue
			}
			kt = Widen(kt, inf.infer(v.Keys[i], scoped))
			vt = Widen(vt, inf.infer(v.Values[i], scoped))
		}
		if kt == TBottom {
			kt = NewTString(StringStatic)
		}
		if vt == TBottom {
			vt = TUnknown
		}
		return NewTDict(kt, vt)
	case *SetExpr:
		t := T(TBottom)
		for _, e := range v.Elts {
			t = Widen(t, inf.infer(e, scoped))
		}
		if t == TBottom {
			t = TUnknown
		}
		return NewTSet(t)
	case *Lambda:
		// A lambda value's own T isn't resolved here: its compilation
		// mode (hoisted/capturing) is decided separately in
		// emit_lambda.go from its free-variable set, not from widen.
		return TUnknown
	case *IfExpr:
		return Widen(inf.infer(v.Body, scoped), inf.infer(v.Orelse, scoped))
	case *Comp:
		switch v.Kind {
		case CompDict:
			return NewTDict(inf.infer(v.Key, scoped), inf.infer(v.Elt, scoped))
		case CompSet:
			return NewTSet(inf.infer(v.Elt, scoped))
		default:
			return NewTList(inf.infer(v.Elt, scoped))
		}
	case *Starred:
		return inf.infer(v.Value, scoped)
	case *Yield:
		return TUnknown
	}
	return TUnknown
}

func inferConstant(c *Constant) T {
	switch c.Kind {
	case ConstInt:
		return TInt
	case ConstBigInt:
		return TBigInt
	case ConstFloat:
		return TFloat
	case ConstBool:
		return TBool
	case ConstString:
		return NewTString(StringStatic)
	case ConstNone:
		return TNone
	}
	return TUnknown
}

// inferBinOp applies spec.md Sec 4.1/4.7's numeric widening rules: BigInt
// dominates, "/" always yields Float, "//" and "%" yield the operand
// class, and a left-shift by a non-constant or by 63-or-more forces
// BigInt even when neither operand is already typed BigInt (the Sec 8
// boundary behaviour "large left-shifts route through BigInt even though
// 1 would otherwise be Int").
func (inf *Inferrer) inferBinOp(v *BinOp, scoped bool) T {
	lt := inf.infer(v.Left, scoped)
	rt := inf.infer(v.Right, scoped)

	if lt == TBigInt || rt == TBigInt || shiftForcesBigInt(v.Op, v.Right) {
		return TBigInt
	}
	if v.Op == OpDiv {
		return TFloat
	}
	return Widen(lt, rt)
}

// shiftForcesBigInt implements spec.md Sec 4.1's "<< of any integer by a
// non-constant or >= 63 yields BigInt" rule.
func shiftForcesBigInt(op BinOpKind, amount Expr) bool {
	if op != OpLShift {
		return false
	}
	c, ok := amount.(*Constant)
	if !ok || c.Kind != ConstInt {
		return true
	}
	return c.Int >= 63
}

func (inf *Inferrer) inferUnaryOp(v *UnaryOp, scoped bool) T {
	operandType := inf.infer(v.Operand, scoped)
	switch v.Op {
	case OpNot:
		return TBool
	case OpNeg, OpPos, OpInvert:
		return operandType
	}
	return TUnknown
}

// inferCompare yields Bool except when a NumpyArray operand is involved,
// where the comparison broadcasts and yields BoolArray (spec.md Sec 4.1).
func (inf *Inferrer) inferCompare(v *Compare, scoped bool) T {
	if inf.infer(v.Left, scoped) == TNumpyArray {
		return TBoolArray
	}
	for _, c := range v.Comparators {
		if inf.infer(c, scoped) == TNumpyArray {
			return TBoolArray
		}
	}
	return TBool
}

// inferAttribute consults class metadata when the receiver's type is a
// known ClassInstance: fields resolve to their registered type and
// property-decorated methods to the method's own return type; everything
// else (unknown attributes, non-class receivers) is Unknown (spec.md
// Sec 4.1).
func (inf *Inferrer) inferAttribute(v *Attribute, scoped bool) T {
	recv := inf.infer(v.Value, scoped)
	ci, ok := recv.(TClassInstance)
	if !ok {
		return TUnknown
	}
	if ft, ok := inf.regs.Classes.GetField(ci.Name, v.Attr); ok {
		return ft
	}
	if m, _, ok := inf.regs.Classes.FindMethod(ci.Name, v.Attr); ok {
		if m.Decorator == MethodProperty && m.Sig.ReturnType != nil {
			return m.Sig.ReturnType
		}
	}
	return TUnknown
}

// inferSubscript implements spec.md Sec 4.1's per-container subscript
// rule: list yields its element type, string yields String (a
// one-character slice, not a distinct char type), dict yields its value
// type, tuple yields the indexed element's type only for a constant
// index, a slice keeps the container's own type, and anything else is
// Unknown.
func (inf *Inferrer) inferSubscript(v *Subscript, scoped bool) T {
	vt := inf.infer(v.Value, scoped)
	if v.Slice.IsSlice {
		return vt
	}
	switch ct := vt.(type) {
	case TList:
		return ct.Elem
	case TString:
		return NewTString(StringRuntime)
	case TDict:
		return ct.Value
	case TTuple:
		c, ok := v.Slice.Index.(*Constant)
		if !ok || c.Kind != ConstInt || c.Int < 0 || int(c.Int) >= len(ct.Elems) {
			return TUnknown
		}
		return ct.Elems[c.Int]
	}
	return TUnknown
}

// inferCall resolves known constructors (user classes, library
// constructors reached through the import dispatch registry) to their
// return type, and ordinary user-function/method calls to their
// registered signature's return type (spec.md Sec 4.1).
func (inf *Inferrer) inferCall(v *Call, scoped bool) T {
	switch fn := v.Func.(type) {
	case *Name:
		if _, ok := inf.regs.Classes.Lookup(fn.Value); ok {
			return NewTClassInstance(fn.Value)
		}
		if sig, ok := inf.regs.Funcs.Lookup(fn.Value); ok && sig.ReturnType != nil {
			return sig.ReturnType
		}
		return TUnknown
	case *Attribute:
		if mod, ok := fn.Value.(*Name); ok {
			if b, ok := inf.regs.Imports.Lookup(mod.Value, fn.Attr); ok {
				return returnConversionType(b.ReturnConversion)
			}
		}
		recv := inf.infer(fn.Value, scoped)
		if ci, ok := recv.(TClassInstance); ok {
			if m, _, ok := inf.regs.Classes.FindMethod(ci.Name, fn.Attr); ok && m.Sig.ReturnType != nil {
				return m.Sig.ReturnType
			}
		}
		return TUnknown
	}
	return TUnknown
}

// returnConversionType maps an ImportBinding's return_conversion tag
// (spec.md Sec 3.4) to the T it produces.
func returnConversionType(rc string) T {
	switch rc {
	case "float":
		return TFloat
	case "numpy_array":
		return TNumpyArray
	case "path":
		return TPath
	case "none":
		return TNone
	}
	return TUnknown
}
