// Package calc evaluates plain arithmetic expressions without executing anything else.
//
// Input is parsed by a small recursive-descent parser into a tree of three node
// kinds (number, unary, binary). Evaluation walks that tree with an explicit
// allow-list of node kinds and operators; anything outside it is rejected with
// ErrUnsupportedExpression before a single value is computed.
package calc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedExpression is returned for any syntax outside the arithmetic grammar.
	ErrUnsupportedExpression = errors.New("unsupported expression for safe evaluation")

	// ErrArithmetic is returned for division by zero, overflow and non-finite results.
	ErrArithmetic = errors.New("arithmetic error")
)

// SyntaxError reports where the input left the grammar.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrUnsupportedExpression.Error(), e.Pos, e.Msg)
}

// Unwrap lets errors.Is match ErrUnsupportedExpression.
func (e *SyntaxError) Unwrap() error {
	return ErrUnsupportedExpression
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokDoubleSlash
	tokPercent
	tokDoubleStar
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokDoubleSlash:
		return "'//'"
	case tokPercent:
		return "'%'"
	case tokDoubleStar:
		return "'**'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "unknown"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits the input into tokens. Any byte that cannot start a token of the
// grammar (letters, quotes, brackets, comparison signs, '?') is a syntax error.
func lex(src string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			end, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokNumber, text: src[i:end], pos: i})
			i = end
		case c == '+':
			tokens = append(tokens, token{kind: tokPlus, text: "+", pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokMinus, text: "-", pos: i})
			i++
		case c == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				tokens = append(tokens, token{kind: tokDoubleStar, text: "**", pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokStar, text: "*", pos: i})
				i++
			}
		case c == '/':
			if i+1 < len(src) && src[i+1] == '/' {
				tokens = append(tokens, token{kind: tokDoubleSlash, text: "//", pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokSlash, text: "/", pos: i})
				i++
			}
		case c == '%':
			tokens = append(tokens, token{kind: tokPercent, text: "%", pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", rune(c))}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

// scanNumber consumes a decimal literal: digits, optional fraction, optional exponent.
func scanNumber(src string, start int) (int, error) {
	i := start
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	intEnd := i
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j >= len(src) || !isDigit(src[j]) {
			return 0, &SyntaxError{Pos: i, Msg: "malformed exponent"}
		}
		for j < len(src) && isDigit(src[j]) {
			j++
		}
		i = j
	}
	// Integer literals may not carry leading zeros ("007"); "00" and "007.5" are fine.
	if i == intEnd && intEnd-start > 1 && src[start] == '0' && strings.Trim(src[start:intEnd], "0") != "" {
		return 0, &SyntaxError{Pos: start, Msg: "leading zeros in integer literal"}
	}
	// A literal glued to a name ("2x", "1j") is not arithmetic.
	if i < len(src) && (isLetter(src[i]) || src[i] == '_' || src[i] == '.') {
		return 0, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q after number", rune(src[i]))}
	}
	return i, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
