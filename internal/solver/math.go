package solver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gusto/internal/calc"
	"gusto/internal/logging"
)

var mathDetails = []string{
	"Crunching numbers is my cardio.",
	"Remember: math is just puzzles wearing serious hats.",
}

// MathStrategy answers problems that are pure arithmetic expressions.
type MathStrategy struct{}

// Name implements Strategy.
func (MathStrategy) Name() string { return "math" }

// Attempt evaluates the trimmed problem. Parse and arithmetic errors decline.
func (MathStrategy) Attempt(problem string) (Solution, bool) {
	cleaned := strings.TrimSpace(problem)
	if cleaned == "" {
		return Solution{}, false
	}

	result, err := calc.Eval(cleaned)
	if err != nil {
		logging.MathDebug("declined %q: %v", cleaned, err)
		return Solution{}, false
	}

	answer := fmt.Sprintf("The numbers danced and the answer is %s!", formatNumber(result))
	return newSolution(KindMath, answer, mathDetails), true
}

// formatNumber prints integral values without a fraction and everything else
// rounded to four decimal places, exact ties going to the even digit.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	if err != nil {
		rounded = v
	}
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		// Rounding collapsed to a whole number (0.00001 -> 0.0); keep it visibly fractional.
		s += ".0"
	}
	return s
}
