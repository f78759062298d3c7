// Package calc evaluates keypad expressions and models the keypad that builds them.
package calc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel is returned by Evaluate for any expression that cannot be evaluated.
// It is itself a valid number so it can seed the next expression.
const Sentinel = "0"

var (
	ErrEmptyExpression = errors.New("empty expression")
	ErrMalformedNumber = errors.New("malformed number")
	ErrDivisionByZero  = errors.New("division by zero")
)

// Evaluate computes expression strictly left to right and returns the result
// in plain decimal notation, or Sentinel when the expression is malformed.
func Evaluate(expression string) string {
	result, err := Eval(expression)
	if err != nil {
		return Sentinel
	}
	return result.String()
}

// Eval computes expression strictly left to right, without operator precedence:
// "2+3*4" is (2+3)*4.
//
// Evaluation starts from an implicit "0+" so a leading operator applies to zero.
// Of consecutive operators the last one wins and a trailing operator is dropped.
func Eval(expression string) (decimal.Decimal, error) {
	acc := decimal.Zero
	pending := "+"
	seen := false

	for _, tok := range Tokenize(expression) {
		if tok.Type == OPERATOR {
			pending = tok.Value
			continue
		}

		operand, err := parseNumber(tok.Value)
		if err != nil {
			return decimal.Zero, err
		}
		acc, err = apply(acc, pending, operand)
		if err != nil {
			return decimal.Zero, err
		}
		pending = ""
		seen = true
	}

	if !seen {
		return decimal.Zero, ErrEmptyExpression
	}
	return acc, nil
}

func parseNumber(value string) (decimal.Decimal, error) {
	if value == "." || strings.Count(value, ".") > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, value)
	}
	if strings.HasPrefix(value, ".") {
		value = "0" + value
	}
	value = strings.TrimSuffix(value, ".")

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, value, err)
	}
	return d, nil
}

func apply(acc decimal.Decimal, operator string, operand decimal.Decimal) (decimal.Decimal, error) {
	switch operator {
	case "+":
		return acc.Add(operand), nil
	case "-":
		return acc.Sub(operand), nil
	case "*":
		return acc.Mul(operand), nil
	case "/":
		if operand.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return acc.Div(operand), nil
	}
	// two numbers are never adjacent since Tokenize merges them
	return decimal.Zero, fmt.Errorf("%w: missing operator before %v", ErrMalformedNumber, operand)
}
