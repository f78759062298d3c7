package calc

import (
	"errors"
	"fmt"
)

type Mode int

const (
	Idle Mode = iota
	Entering
	Evaluated
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Entering:
		return "entering"
	case Evaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

const (
	KeyClear    = "C"
	KeyEvaluate = "="
)

var ErrUnknownKey = errors.New("unknown key")

// Keypad the state of a manual entry pad. Keypad is a value: Press returns the
// next state and never modifies the receiver.
type Keypad struct {
	// Expression everything typed since the last clear, fed to Evaluate on "="
	Expression string

	// Display the amount shown to the user. With the calculator on, operators
	// are kept out of it.
	Display string

	Mode Mode

	// Calculator whether operator keys are part of the entry
	Calculator bool
}

// Press applies a single key and returns the resulting state.
func (k Keypad) Press(key string) (Keypad, error) {
	switch {
	case key == KeyClear:
		return Keypad{Calculator: k.Calculator}, nil

	case key == KeyEvaluate:
		if k.Mode == Idle {
			return k, nil
		}
		result := Evaluate(k.Expression)
		k.Expression = result
		k.Display = result
		k.Mode = Evaluated
		return k, nil

	case key == "." || isDigits(key):
		k.Expression += key
		k.Display += key
		k.Mode = Entering
		return k, nil

	case len(key) == 1 && isOperator(rune(key[0])):
		k.Expression += key
		if !k.Calculator {
			k.Display += key
		}
		k.Mode = Entering
		return k, nil
	}

	return k, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// isDigits reports whether key is one or more digits, like the "00" and "000" keys.
func isDigits(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

// PressAll applies keys in order, stopping at the first unknown key.
func (k Keypad) PressAll(keys ...string) (Keypad, error) {
	var err error
	for _, key := range keys {
		k, err = k.Press(key)
		if err != nil {
			return k, err
		}
	}
	return k, nil
}

// WithCalculator returns k with the calculator switched on or off.
func (k Keypad) WithCalculator(on bool) Keypad {
	k.Calculator = on
	return k
}
