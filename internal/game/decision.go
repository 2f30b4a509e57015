package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decision is a choice made by the human player for one tick
type Decision int

const (
	Hit Decision = iota + 1
	Hold
)

// ErrMalformedDecision is returned for input that is not a menu choice
var ErrMalformedDecision = errors.New("malformed decision input")

func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Hold:
		return "hold"
	default:
		return "unknown"
	}
}

// ParseDecision converts a line of input into a decision: "1" is Hit and "2"
// is Hold. Anything else wraps ErrMalformedDecision.
func ParseDecision(line string) (Decision, error) {
	line = strings.TrimSpace(line)
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedDecision, line)
	}
	switch Decision(n) {
	case Hit, Hold:
		return Decision(n), nil
	default:
		return 0, fmt.Errorf("%w: %d is not a menu option", ErrMalformedDecision, n)
	}
}
