package calc

import (
	"fmt"
	"math"
)

type binaryFunc func(a, b float64) (float64, error)

type unaryFunc func(a float64) float64

// Allowed operators. A node whose operator is missing here is rejected.
var (
	binaryOps = map[tokenKind]binaryFunc{
		tokPlus:        func(a, b float64) (float64, error) { return a + b, nil },
		tokMinus:       func(a, b float64) (float64, error) { return a - b, nil },
		tokStar:        func(a, b float64) (float64, error) { return a * b, nil },
		tokSlash:       divide,
		tokDoubleSlash: floorDivide,
		tokPercent:     modulo,
		tokDoubleStar:  power,
	}
	unaryOps = map[tokenKind]unaryFunc{
		tokPlus:  func(a float64) float64 { return a },
		tokMinus: func(a float64) float64 { return -a },
	}
)

// Eval parses expr and evaluates it. Only numeric literals, parentheses, the
// binary operators + - * / // % ** and unary + - are accepted.
func Eval(expr string) (float64, error) {
	tree, err := parse(expr)
	if err != nil {
		return 0, err
	}
	v, err := evaluate(tree)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: result is not a finite number", ErrArithmetic)
	}
	return v, nil
}

func evaluate(n node) (float64, error) {
	switch n := n.(type) {
	case *numberNode:
		return n.value, nil
	case *unaryNode:
		op, ok := unaryOps[n.op]
		if !ok {
			return 0, &SyntaxError{Pos: n.offset, Msg: fmt.Sprintf("unary operator %s not allowed", n.op)}
		}
		v, err := evaluate(n.operand)
		if err != nil {
			return 0, err
		}
		return op(v), nil
	case *binaryNode:
		op, ok := binaryOps[n.op]
		if !ok {
			return 0, &SyntaxError{Pos: n.offset, Msg: fmt.Sprintf("binary operator %s not allowed", n.op)}
		}
		left, err := evaluate(n.left)
		if err != nil {
			return 0, err
		}
		right, err := evaluate(n.right)
		if err != nil {
			return 0, err
		}
		v, err := op(left, right)
		if err != nil {
			return 0, err
		}
		if math.IsInf(v, 0) && !math.IsInf(left, 0) && !math.IsInf(right, 0) {
			return 0, fmt.Errorf("%w: overflow at offset %d", ErrArithmetic, n.offset)
		}
		return v, nil
	default:
		pos := -1
		if n != nil {
			pos = n.pos()
		}
		return 0, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("node %T not allowed", n)}
	}
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: division by zero", ErrArithmetic)
	}
	return a / b, nil
}

// modulo returns a result with the sign of the divisor.
func modulo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: modulo by zero", ErrArithmetic)
	}
	mod := math.Mod(a, b)
	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
		}
	} else {
		mod = math.Copysign(0, b)
	}
	return mod, nil
}

// floorDivide rounds the quotient toward negative infinity.
func floorDivide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: integer division by zero", ErrArithmetic)
	}
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1.0
	}
	if div == 0 {
		return math.Copysign(0, a/b), nil
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor += 1.0
	}
	return floor, nil
}

func power(a, b float64) (float64, error) {
	if a == 0 && b < 0 {
		return 0, fmt.Errorf("%w: zero cannot be raised to a negative power", ErrArithmetic)
	}
	v := math.Pow(a, b)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: negative number raised to a fractional power", ErrArithmetic)
	}
	return v, nil
}
