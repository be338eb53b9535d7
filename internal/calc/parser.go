package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// maxDepth bounds nesting of parentheses and unary/power chains.
const maxDepth = 200

type node interface {
	pos() int
}

type numberNode struct {
	value  float64
	offset int
}

type unaryNode struct {
	op      tokenKind
	operand node
	offset  int
}

type binaryNode struct {
	op          tokenKind
	left, right node
	offset      int
}

func (n *numberNode) pos() int { return n.offset }
func (n *unaryNode) pos() int  { return n.offset }
func (n *binaryNode) pos() int { return n.offset }

type parser struct {
	tokens []token
	i      int
	depth  int
}

// parse builds the expression tree for src. The whole input must be consumed.
func parse(src string) (node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t.kind)}
	}
	return n, nil
}

func (p *parser) peek() token { return p.tokens[p.i] }

func (p *parser) next() token {
	t := p.tokens[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return &SyntaxError{Pos: pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// expr := term (("+" | "-") term)*
func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokPlus && t.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.kind, left: left, right: right, offset: t.pos}
	}
}

// term := factor (("*" | "/" | "//" | "%") factor)*
func (p *parser) term() (node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.kind {
		case tokStar, tokSlash, tokDoubleSlash, tokPercent:
		default:
			return left, nil
		}
		p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.kind, left: left, right: right, offset: t.pos}
	}
}

// factor := ("+" | "-") factor | power
func (p *parser) factor() (node, error) {
	t := p.peek()
	if t.kind != tokPlus && t.kind != tokMinus {
		return p.power()
	}
	if err := p.enter(t.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	p.next()
	operand, err := p.factor()
	if err != nil {
		return nil, err
	}
	return &unaryNode{op: t.kind, operand: operand, offset: t.pos}, nil
}

// power := atom ["**" factor]
//
// The right operand is a factor, so "2 ** -1" parses and "-2 ** 2" is -(2 ** 2).
func (p *parser) power() (node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokDoubleStar {
		return base, nil
	}
	if err := p.enter(t.pos); err != nil {
		return nil, err
	}
	defer p.leave()
	p.next()
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}
	return &binaryNode{op: tokDoubleStar, left: base, right: exp, offset: t.pos}, nil
}

// atom := NUMBER | "(" expr ")"
func (p *parser) atom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: literal %q out of range", ErrArithmetic, t.text)
		}
		// Underflow rounds to zero; only malformed literals are fatal.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("malformed number %q", t.text)}
		}
		return &numberNode{value: v, offset: t.pos}, nil
	case tokLParen:
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: fmt.Sprintf("expected ')', got %s", closing.kind)}
		}
		return inner, nil
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", t.kind)}
	}
}
