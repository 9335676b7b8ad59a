package brightness

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/knetic/govaluate"
)

// ParseLevel interprets expr as a brightness level relative to the
// normalized level current and returns the normalized result.
//
// Accepted forms are
//
//	40%        absolute percentage
//	+5%, -5%   relative percentage
//	0.4        normalized level when at most 1, else a percentage
//	+0.1, -10  relative change, normalized or percentage as above
//	current*0.5, percent-10
//
// The last form is an arithmetic expression over the parameters current
// (normalized) and percent (current as a percentage) giving a normalized
// level. The result is clamped to [0, 1].
func ParseLevel(expr string, current float64) (float64, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return 0, errors.New("empty brightness level")
	}
	relative := s[0] == '+' || s[0] == '-'

	if num, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q: %w", expr, err)
		}
		return level(n/100, current, relative)
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if math.Abs(n) > 1 {
			n /= 100
		}
		return level(n, current, relative)
	}

	e, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return 0, fmt.Errorf("invalid brightness expression %q: %w", expr, err)
	}
	res, err := e.Evaluate(map[string]any{
		"current": current,
		"percent": current * 100,
	})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	n, ok := res.(float64)
	if !ok {
		return 0, fmt.Errorf("brightness expression %q is not numeric: %v", expr, res)
	}
	return level(n, current, false)
}

func level(v, current float64, relative bool) (float64, error) {
	if relative {
		v += current
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid brightness level: %v", v)
	}
	return Clamp(v), nil
}

// Clamp limits v to [0, 1].
func Clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
