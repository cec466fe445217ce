package weight

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nihei9/ctfparse/ctferr"
)

// LogProb represents a probability, stored internally as its negative
// natural logarithm so that multiplication of probabilities becomes
// addition in value-space. Probabilities greater than 1 can arise from
// Div and are represented without error; only construction from a raw
// probability is domain-checked.
type LogProb struct {
	value float64
}

// NewLogProb creates a LogProb from a probability in [0,1].
func NewLogProb(p float64) (LogProb, error) {
	if p < 0.0 || p > 1.0 {
		return LogProb{}, &ctferr.WeightDomainError{Value: p}
	}
	return LogProb{value: -math.Log(p)}, nil
}

// MustLogProb is NewLogProb but panics on a domain error; useful for
// literal weights in tests and examples.
func MustLogProb(p float64) LogProb {
	lp, err := NewLogProb(p)
	if err != nil {
		panic(err)
	}
	return lp
}

// OneLogProb is the multiplicative identity (probability 1).
func OneLogProb() LogProb {
	return LogProb{value: 0.0}
}

// ZeroLogProb is the absorbing element (probability 0).
func ZeroLogProb() LogProb {
	return LogProb{value: math.Inf(1)}
}

// Probability returns the probability this LogProb represents.
func (p LogProb) Probability() float64 {
	return math.Exp(-p.value)
}

// Less reports whether p is a lower-priority (less probable) weight than
// other. NaN values are treated as maximally unlikely so the order stays
// total.
func (p LogProb) Less(other LogProb) bool {
	if math.IsNaN(p.value) {
		return !math.IsNaN(other.value)
	}
	if math.IsNaN(other.value) {
		return false
	}
	// Lower -ln(p) means a higher probability, i.e. higher priority.
	return p.value > other.value
}

// Mul multiplies two probabilities.
func (p LogProb) Mul(other LogProb) LogProb {
	return LogProb{value: p.value + other.value}
}

// Div divides two probabilities.
func (p LogProb) Div(other LogProb) LogProb {
	return LogProb{value: p.value - other.value}
}

// Sub returns the probability represented by p minus the probability
// represented by other; p must represent a probability at least as large
// as other's (i.e. p.value <= other.value), mirroring the original's
// domain restriction.
func (p LogProb) Sub(other LogProb) LogProb {
	x, y := p.value, other.value
	if x > y {
		panic(fmt.Sprintf("exp(-%v) - exp(-%v) is less than zero", x, y))
	}
	return LogProb{value: x - math.Log(-math.Expm1(x-y))}
}

// Add combines two probabilities as if summing independent events, via
// the log-sum-exp identity expressed in negative-log space:
// min(a,b) - ln1p(exp(-|a-b|)).
func (p LogProb) Add(other LogProb) LogProb {
	a, b := p.value, other.value
	x, y := a, b
	if b < a {
		x, y = b, a
	}
	return LogProb{value: x - math.Log1p(math.Exp(x-y))}
}

// logProbEpsilon bounds how far two LogProb values may differ in their
// underlying -ln(p) representation and still compare Equal. The
// arithmetic identities relating Add/Sub/Mul/Div (e.g. (a+b)-a = b) only
// hold up to floating-point rounding, not bit-exactly, so Equal needs a
// tolerance the same way the original's PartialEq did.
const logProbEpsilon = 1e-9

// Equal reports value equality within logProbEpsilon on the underlying
// -ln(p) representation; NaN equals NaN.
func (p LogProb) Equal(other LogProb) bool {
	if math.IsNaN(p.value) {
		return math.IsNaN(other.value)
	}
	if math.IsNaN(other.value) {
		return false
	}
	return math.Abs(p.value-other.value) < logProbEpsilon
}

// String renders the probability this LogProb represents.
func (p LogProb) String() string {
	return strconv.FormatFloat(p.Probability(), 'g', -1, 64)
}

// ParseLogProb parses a probability in the same textual form String
// produces.
func ParseLogProb(s string) (LogProb, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return LogProb{}, fmt.Errorf("parse log-probability %q: %w", s, err)
	}
	return NewLogProb(f)
}
