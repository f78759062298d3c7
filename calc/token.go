package calc

type Type int

const (
	NUMBER Type = iota
	OPERATOR
)

func (t Type) String() string {
	switch t {
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Token a lexical unit of an expression with its type and literal value.
type Token struct {
	Type  Type
	Value string
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumeric(r rune) bool {
	return isDigit(r) || r == '.'
}

func isOperator(r rune) bool {
	switch r {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

// Tokenize splits an expression into maximal runs of digits and decimal points
// and single character operators. Any other character is skipped without
// ending the token being scanned, so "1 2" reads as the number 12.
func Tokenize(expression string) []Token {
	var tokens []Token
	var number []rune

	flush := func() {
		if len(number) > 0 {
			tokens = append(tokens, Token{Type: NUMBER, Value: string(number)})
			number = number[:0]
		}
	}

	for _, r := range expression {
		switch {
		case isNumeric(r):
			number = append(number, r)
		case isOperator(r):
			flush()
			tokens = append(tokens, Token{Type: OPERATOR, Value: string(r)})
		}
	}
	flush()

	return tokens
}
