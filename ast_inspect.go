package pyzc

// Inspect traverses an AST in depth-first order, calling f for each node.
// If f returns false the children of that node are skipped. This mirrors
// Go's own ast.Inspect and the teacher's Inspect helper, which query_analysis.go
// used to build a call graph with a single type switch rather than a full
// visitor interface -- the same shape this package uses for the
// Allocator-Need Analyzer's call graph (alloc_analysis.go).
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch v := n.(type) {
	case *Constant, *Name, *Starred:
		// leaves (Starred's Value is visited below via type assertion)
		if s, ok := n.(*Starred); ok {
			Inspect(s.Value, f)
		}
	case *BinOp:
		Inspect(v.Left, f)
		Inspect(v.Right, f)
	case *UnaryOp:
		Inspect(v.Operand, f)
	case *BoolOp:
		for _, e := range v.Values {
			Inspect(e, f)
		}
	case *Compare:
		Inspect(v.Left, f)
		for _, e := range v.Comparators {
			Inspect(e, f)
		}
	case *Call:
		Inspect(v.Func, f)
		for _, a := range v.Args {
			Inspect(a, f)
		}
		for _, k := range v.Keywords {
			Inspect(k.Value, f)
		}
	case *Attribute:
		Inspect(v.Value, f)
	case *Subscript:
		Inspect(v.Value, f)
		if v.Slice.IsSlice {
			Inspect(v.Slice.Lower, f)
			Inspect(v.Slice.Upper, f)
			Inspect(v.Slice.Step, f)
		} else {
			Inspect(v.Slice.Index, f)
		}
	case *TupleExpr:
		for _, e := range v.Elts {
			Inspect(e, f)
		}
	case *ListExpr:
		for _, e := range v.Elts {
			Inspect(e, f)
		}
	case *DictExpr:
		for i := range v.Keys {
			Inspect(v.Keys[i], f)
			Inspect(v.Values[i], f)
		}
	case *SetExpr:
		for _, e := range v.Elts {
			Inspect(e, f)
		}
	case *Lambda:
		for _, p := range v.Params {
			Inspect(p.Default, f)
		}
		Inspect(v.Body, f)
	case *IfExpr:
		Inspect(v.Test, f)
		Inspect(v.Body, f)
		Inspect(v.Orelse, f)
	case *Comp:
		Inspect(v.Elt, f)
		Inspect(v.Key, f)
		for _, g := range v.Generators {
			Inspect(g.Target, f)
			Inspect(g.Iter, f)
			for _, c := range g.Ifs {
				Inspect(c, f)
			}
		}
	case *Yield:
		Inspect(v.Value, f)
	case *FunctionDef:
		for _, p := range v.Params {
			Inspect(p.Default, f)
		}
		for _, d := range v.Decorators {
			Inspect(d, f)
		}
		for _, s := range v.Body {
			Inspect(s, f)
		}
	case *ClassDef:
		for _, s := range v.Body {
			Inspect(s, f)
		}
	case *Return:
		Inspect(v.Value, f)
	case *Assign:
		for _, t := range v.Targets {
			Inspect(t, f)
		}
		Inspect(v.Value, f)
	case *AugAssign:
		Inspect(v.Target, f)
		Inspect(v.Value, f)
	case *If:
		Inspect(v.Test, f)
		for _, s := range v.Body {
			Inspect(s, f)
		}
		for _, s := range v.Orelse {
			Inspect(s, f)
		}
	case *While:
		Inspect(v.Test, f)
		for _, s := range v.Body {
			Inspect(s, f)
		}
		for _, s := range v.Orelse {
			Inspect(s, f)
		}
	case *For:
		Inspect(v.Target, f)
		Inspect(v.Iter, f)
		for _, s := range v.Body {
			Inspect(s, f)
		}
		for _, s := range v.Orelse {
			Inspect(s, f)
		}
	case *Try:
		for _, s := range v.Body {
			Inspect(s, f)
		}
		for _, h := range v.Handlers {
			Inspect(h.Type, f)
			for _, s := range h.Body {
				Inspect(s, f)
			}
		}
		for _, s := range v.Orelse {
			Inspect(s, f)
		}
		for _, s := range v.Finally {
			Inspect(s, f)
		}
	case *Raise:
		Inspect(v.Exc, f)
	case *With:
		for _, it := range v.Items {
			Inspect(it.ContextExpr, f)
			Inspect(it.Target, f)
		}
		for _, s := range v.Body {
			Inspect(s, f)
		}
	case *Assert:
		Inspect(v.Test, f)
		Inspect(v.Msg, f)
	case *Import, *ImportFrom, *GlobalNonlocal, *SimpleStmt:
		// no child expressions
	}
}

// CollectCalledNames returns the set of bare identifier names invoked as
// `name(...)` anywhere within body -- the call-graph edge extraction used by
// the Allocator-Need Analyzer (spec.md Sec 4.3), grounded on
// computeCallGraphData's Inspect-based walk in the teacher's query_analysis.go.
func CollectCalledNames(body []Stmt) map[string]bool {
	called := map[string]bool{}
	for _, s := range body {
		Inspect(s, func(n Node) bool {
			if call, ok := n.(*Call); ok {
				if name, ok := call.Func.(*Name); ok {
					called[name.Value] = true
				}
			}
			return true
		})
	}
	return called
}
