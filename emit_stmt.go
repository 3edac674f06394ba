package pyzc

import "fmt"

// emitStmt lowers one statement to Zig, matching spec.md Sec 4's
// statement-level translation rules. It is the statement half of the
// visit(node) dispatch the teacher's gen_go.go uses for its own AST,
// split out from expression emission (emit_call.go, emit_literals.go,
// etc.) the way the teacher splits GenVisitor's statement and
// expression methods across files.
func (e *Emitter) emitStmt(s Stmt) error {
	switch v := s.(type) {
	case *Return:
		if v.Value == nil {
			e.out.writeil("return;")
			return nil
		}
		expr, err := e.emitExpr(v.Value)
		if err != nil {
			return err
		}
		e.out.writeil(fmt.Sprintf("return %s;", expr))
		return nil

	case *Assign:
		return e.emitAssign(v)

	case *AugAssign:
		return e.emitAugAssign(v)

	case *If:
		return e.emitIf(v)

	case *While:
		test, err := e.emitExpr(v.Test)
		if err != nil {
			return err
		}
		e.out.writeil(fmt.Sprintf("while (%s) {", test))
		e.out.indent()
		for _, s := range v.Body {
			if err := e.emitStmt(s); err != nil {
				return err
			}
		}
		e.out.unindent()
		e.out.writeil("}")
		return nil

	case *For:
		return e.emitFor(v)

	case *Assert:
		test, err := e.emitExpr(v.Test)
		if err != nil {
			return err
		}
		e.out.writeil(fmt.Sprintf("std.debug.assert(%s);", test))
		return nil

	case *Raise:
		if v.Exc == nil {
			e.out.writeil("return err;")
			return nil
		}
		exc, err := e.emitExpr(v.Exc)
		if err != nil {
			return err
		}
		e.out.writeil(fmt.Sprintf("return %s;", exc))
		return nil

	case *With:
		return e.emitWith(v)

	case *Try:
		return e.emitTry(v)

	case *SimpleStmt:
		switch v.Kind {
		case StmtPass:
			// no-op: Zig blocks don't need an explicit empty statement
		case StmtBreak:
			e.out.writeil("break;")
		case StmtContinue:
			e.out.writeil("continue;")
		}
		return nil

	case *GlobalNonlocal, *Import, *ImportFrom, *FunctionDef, *ClassDef:
		// no code is emitted for these: imports and global/nonlocal
		// declarations produce nothing, and a FunctionDef/ClassDef
		// nested in a body is skipped (only the top-level definitions
		// passed to Translate are emitted).
		return nil
	}
	return NewTranslationError(s.Range(), "unsupported statement %T", s)
}

func (e *Emitter) emitAssign(v *Assign) error {
	val, err := e.emitExpr(v.Value)
	if err != nil {
		return err
	}
	for _, t := range v.Targets {
		name, ok := t.(*Name)
		if !ok {
			target, err := e.emitExpr(t)
			if err != nil {
				return err
			}
			e.out.writeil(fmt.Sprintf("%s = %s;", target, val))
			continue
		}
		// record_assignment (spec.md Sec 4.1) before emission so later
		// statements in this body see the widened type through this name.
		e.infer.RecordAssignment(name, v.Value)
		e.out.writeil(fmt.Sprintf("var %s = %s;", EscapeIdent(name.Value), val))
	}
	return nil
}

func (e *Emitter) emitAugAssign(v *AugAssign) error {
	target, err := e.emitExpr(v.Target)
	if err != nil {
		return err
	}
	val, err := e.emitExpr(v.Value)
	if err != nil {
		return err
	}
	op, err := zigBinOpToken(v.Op)
	if err != nil {
		return err
	}
	e.out.writeil(fmt.Sprintf("%s = %s %s %s;", target, target, op, val))
	return nil
}

func (e *Emitter) emitIf(v *If) error {
	test, err := e.emitExpr(v.Test)
	if err != nil {
		return err
	}
	e.out.writeil(fmt.Sprintf("if (%s) {", test))
	e.out.indent()
	for _, s := range v.Body {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	e.out.unindent()
	if len(v.Orelse) == 0 {
		e.out.writeil("}")
		return nil
	}
	e.out.writeil("} else {")
	e.out.indent()
	for _, s := range v.Orelse {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	e.out.unindent()
	e.out.writeil("}")
	return nil
}

func (e *Emitter) emitFor(v *For) error {
	target, ok := v.Target.(*Name)
	if !ok {
		return NewTranslationError(v.Range(), "for-loop target must be a simple name")
	}
	iter, err := e.emitExpr(v.Iter)
	if err != nil {
		return err
	}

	elemType := T(TUnknown)
	if lt, ok := e.infer.InferExprScoped(v.Iter).(TList); ok {
		elemType = lt.Elem
	}
	e.infer.RegisterParam(target.Value, elemType)
	defer e.infer.UnregisterParam(target.Value)

	e.out.writeil(fmt.Sprintf("for (%s) |%s| {", iter, EscapeIdent(target.Value)))
	e.out.indent()
	for _, s := range v.Body {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	e.out.unindent()
	e.out.writeil("}")
	return nil
}

// emitWith lowers a context-manager block to a defer-guarded block that
// calls __enter__/__exit__ by name (SPEC_FULL.md Sec 6.1).
func (e *Emitter) emitWith(v *With) error {
	e.out.writeil("{")
	e.out.indent()
	for _, item := range v.Items {
		ctx, err := e.emitExpr(item.ContextExpr)
		if err != nil {
			return err
		}
		if item.Target != nil {
			target, ok := item.Target.(*Name)
			if !ok {
				return NewTranslationError(v.Range(), "with-target must be a simple name")
			}
			e.out.writeil(fmt.Sprintf("var %s = try %s.__enter__();", EscapeIdent(target.Value), ctx))
			e.out.writeil(fmt.Sprintf("defer %s.__exit__();", EscapeIdent(target.Value)))
		} else {
			e.out.writeil(fmt.Sprintf("_ = try %s.__enter__();", ctx))
			e.out.writeil(fmt.Sprintf("defer %s.__exit__();", ctx))
		}
	}
	for _, s := range v.Body {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	e.out.unindent()
	e.out.writeil("}")
	return nil
}

// emitTry lowers try/except to Zig's error-union `catch` blocks: the
// handler body runs when the guarded block returns an error (spec.md
// Sec 4's error-handling Non-goal note applies only to custom exception
// hierarchies -- built-in control flow is still lowered).
func (e *Emitter) emitTry(v *Try) error {
	e.out.writeil("(blk: {")
	e.out.indent()
	for _, s := range v.Body {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	e.out.unindent()
	e.out.writeil("}) catch |err| {")
	e.out.indent()
	e.out.writeil("_ = err;")
	for _, h := range v.Handlers {
		for _, s := range h.Body {
			if err := e.emitStmt(s); err != nil {
				return err
			}
		}
	}
	e.out.unindent()
	e.out.writeil("};")
	for _, s := range v.Finally {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	return nil
}
