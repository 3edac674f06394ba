package pyzc

import (
	"fmt"

	"github.com/pyzc/pyzc/pkg/runtimeapi"
)

// emitBinOp lowers a binary operator, routing through BigInt runtime
// calls with try/catch unreachable when either operand's inferred type
// is BigInt -- or when a left-shift is forced to BigInt by spec.md Sec
// 4.1's "non-constant or >= 63" rule even though neither operand started
// out BigInt-typed -- through the Python-semantics division/modulo
// helpers for "/"//"%", and through native Zig operators otherwise
// (spec.md Sec 4.7).
func (e *Emitter) emitBinOp(v *BinOp) (string, error) {
	left, err := e.emitExpr(v.Left)
	if err != nil {
		return "", err
	}
	right, err := e.emitExpr(v.Right)
	if err != nil {
		return "", err
	}

	leftIsBig := e.isBigIntOperand(v.Left)
	rightIsBig := e.isBigIntOperand(v.Right)
	forcedByShift := shiftForcesBigInt(v.Op, v.Right)

	if leftIsBig || rightIsBig || forcedByShift {
		fn, ok := bigIntFuncFor(v.Op)
		if !ok {
			return "", NewTranslationError(v.Range(), "operator not supported for bigint operands")
		}
		// The other operand is promoted via BigInt.fromInt when it
		// isn't already BigInt-typed (spec.md Sec 4.7); a shift amount
		// stays a plain scalar shift count.
		leftArg := left
		if !leftIsBig {
			leftArg = fmt.Sprintf("(try %s(%s, %s))", runtimeapi.BigIntFromInt, e.allocatorName(), left)
		}
		rightArg := right
		if !rightIsBig && v.Op != OpLShift && v.Op != OpRShift {
			rightArg = fmt.Sprintf("(try %s(%s, %s))", runtimeapi.BigIntFromInt, e.allocatorName(), right)
		}
		return fmt.Sprintf("(try %s(%s, %s))", fn, leftArg, rightArg), nil
	}

	switch v.Op {
	case OpDiv:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.DivideFloat, left, right), nil
	case OpFloorDiv:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.DivideInt, left, right), nil
	case OpMod:
		return fmt.Sprintf("%s(%s, %s)", runtimeapi.ModuloInt, left, right), nil
	}

	tok, err := zigBinOpToken(v.Op)
	if err != nil {
		return "", NewTranslationError(v.Range(), "%s", err.Error())
	}
	return fmt.Sprintf("(%s %s %s)", left, tok, right), nil
}

// isBigIntOperand consults the type-inference pass (infer.go) instead of
// only recognizing a parser-pre-classified ConstBigInt literal: a name
// whose tracked local type widened to BigInt through an earlier
// assignment, or an expression built from one, is caught here too
// (spec.md Sec 4.7 boundary: "1 << 200" has no explicit bignum literal
// but must still route through BigInt).
func (e *Emitter) isBigIntOperand(x Expr) bool {
	return e.infer.InferExprScoped(x) == TBigInt
}

func bigIntFuncFor(op BinOpKind) (string, bool) {
	switch op {
	case OpAdd:
		return runtimeapi.BigIntAdd, true
	case OpSub:
		return runtimeapi.BigIntSub, true
	case OpMul:
		return runtimeapi.BigIntMul, true
	case OpFloorDiv:
		return runtimeapi.BigIntDiv, true
	case OpMod:
		return runtimeapi.BigIntMod, true
	case OpPow:
		return runtimeapi.BigIntPow, true
	case OpLShift:
		return runtimeapi.BigIntShl, true
	case OpRShift:
		return runtimeapi.BigIntShr, true
	case OpBitAnd:
		return runtimeapi.BigIntAnd, true
	case OpBitOr:
		return runtimeapi.BigIntOr, true
	case OpBitXor:
		return runtimeapi.BigIntXor, true
	}
	return "", false
}

func zigBinOpToken(op BinOpKind) (string, error) {
	switch op {
	case OpAdd:
		return "+", nil
	case OpSub:
		return "-", nil
	case OpMul:
		return "*", nil
	case OpPow:
		return "rt.pow", nil
	case OpLShift:
		return "<<", nil
	case OpRShift:
		return ">>", nil
	case OpBitAnd:
		return "&", nil
	case OpBitOr:
		return "|", nil
	case OpBitXor:
		return "^", nil
	}
	return "", fmt.Errorf("operator has no direct Zig token (routed elsewhere)")
}

func (e *Emitter) emitUnaryOp(v *UnaryOp) (string, error) {
	operand, err := e.emitExpr(v.Operand)
	if err != nil {
		return "", err
	}
	switch v.Op {
	case OpNeg:
		if e.isBigIntOperand(v.Operand) {
			return fmt.Sprintf("(try %s(%s))", runtimeapi.BigIntNeg, operand), nil
		}
		return fmt.Sprintf("(-%s)", operand), nil
	case OpPos:
		return operand, nil
	case OpNot:
		return fmt.Sprintf("(!%s(%s))", runtimeapi.PyTruthy, operand), nil
	case OpInvert:
		return fmt.Sprintf("(~%s)", operand), nil
	}
	return "", NewTranslationError(v.Range(), "unsupported unary operator")
}

func (e *Emitter) emitBoolOp(v *BoolOp) (string, error) {
	tok := "and"
	if v.Op == BoolOr {
		tok = "or"
	}
	out := ""
	for i, val := range v.Values {
		s, err := e.emitExpr(val)
		if err != nil {
			return "", err
		}
		if i == 0 {
			out = fmt.Sprintf("%s(%s)", runtimeapi.PyTruthy, s)
			continue
		}
		out = fmt.Sprintf("(%s %s %s(%s))", out, tok, runtimeapi.PyTruthy, s)
	}
	return out, nil
}
