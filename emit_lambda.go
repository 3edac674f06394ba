package pyzc

import (
	"fmt"
	"strings"
)

// lambdaMode is resolved per lambda at emission time (spec.md Sec 4.6):
// a lambda with no free variables is lambdaHoisted and one with free
// variables is lambdaInlineStruct. Both are emitted inline as anonymous
// Zig structs; no lambda is hoisted to a top-level declaration.
// resolveLambdaMode never returns lambdaCapturingStruct.
type lambdaMode int

const (
	lambdaHoisted lambdaMode = iota
	lambdaInlineStruct
	lambdaCapturingStruct
)

// resolveLambdaMode inspects the lambda body for free variables (names
// referenced that aren't parameters, of this lambda or of any lambda
// nested inside it) to pick its compilation mode. Only whether there is
// anything to capture is considered; whether the lambda escapes
// (returned/stored vs. called immediately) is not.
func (e *Emitter) resolveLambdaMode(v *Lambda) lambdaMode {
	if len(freeVarsOf(v)) == 0 {
		return lambdaHoisted
	}
	return lambdaInlineStruct
}

// emitLambda lowers a lambda expression per spec.md Sec 4.6. A
// capture-free lambda is emitted inline as `(struct { pub fn call(...)
// ... }).call`, a function value; a capturing lambda is emitted inline
// as an instance of an anonymous struct whose fields hold the captured
// values and whose `call` method holds the body. The instance is not
// called here.
func (e *Emitter) emitLambda(v *Lambda) (string, error) {
	mode := e.resolveLambdaMode(v)

	for _, p := range v.Params {
		e.infer.RegisterParam(p.Name, TUnknown)
	}
	defer func() {
		for _, p := range v.Params {
			e.infer.UnregisterParam(p.Name)
		}
	}()

	body, err := e.emitExpr(v.Body)
	if err != nil {
		return "", err
	}
	params := make([]string, len(v.Params))
	for i, p := range v.Params {
		params[i] = fmt.Sprintf("%s: anytype", EscapeIdent(p.Name))
	}

	switch mode {
	case lambdaHoisted:
		return fmt.Sprintf("(struct { pub fn call(%s) @TypeOf(%s) { return %s; } }).call",
			strings.Join(params, ", "), body, body), nil
	default:
		free := freeVarsOf(v)
		captures := make([]string, len(free))
		for i, n := range free {
			captures[i] = fmt.Sprintf("%s: @TypeOf(%s) = %s", EscapeIdent(n), EscapeIdent(n), EscapeIdent(n))
		}
		return fmt.Sprintf(
			"(struct { %s pub fn call(self: @This(), %s) @TypeOf(%s) { return %s; } }{})",
			strings.Join(captures, ", "), strings.Join(params, ", "), body, body,
		), nil
	}
}

// freeVarsOf returns the first-occurrence-ordered list of names
// referenced in the lambda body that resolve to neither its own
// parameters nor a parameter of a lambda nested inside it -- these
// become the capturing struct's fields (spec.md Sec 4.6). Unlike a plain
// Inspect walk, bound names are tracked per lexical scope so a nested
// lambda's own parameter never counts as a capture of the outer one
// (e.g. in `lambda x: lambda y: x+y`, the inner lambda captures only
// `x`, never `y`).
func freeVarsOf(v *Lambda) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(n Node, bound map[string]bool)
	walk = func(n Node, bound map[string]bool) {
		switch t := n.(type) {
		case *Name:
			if !bound[t.Value] && !seen[t.Value] {
				seen[t.Value] = true
				out = append(out, t.Value)
			}
		case *Lambda:
			inner := make(map[string]bool, len(bound)+len(t.Params))
			for k := range bound {
				inner[k] = true
			}
			for _, p := range t.Params {
				inner[p.Name] = true
				if p.Default != nil {
					walk(p.Default, bound)
				}
			}
			walk(t.Body, inner)
		default:
			Inspect(n, func(child Node) bool {
				if child == n {
					return true
				}
				if _, isLambda := child.(*Lambda); isLambda {
					walk(child, bound)
					return false
				}
				if name, ok := child.(*Name); ok {
					if !bound[name.Value] && !seen[name.Value] {
						seen[name.Value] = true
						out = append(out, name.Value)
					}
					return false
				}
				return true
			})
		}
	}

	bound := map[string]bool{}
	for _, p := range v.Params {
		bound[p.Name] = true
	}
	walk(v.Body, bound)
	return out
}
