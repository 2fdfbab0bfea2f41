package argspec

import "fmt"

// Unbounded is the sentinel max for arities with no upper limit.
const Unbounded = -1

// Arity describes how many values an option or positional may consume.
// The zero value is "exactly zero values" (what flags use).
type Arity struct {
	min    int
	max    int // Unbounded means no upper limit
	greedy bool
}

// Arity constructors

// Exactly returns an arity that consumes exactly n values.
func Exactly(n int) Arity {
	return Arity{min: n, max: n}
}

// Optional returns an arity that consumes zero or one value.
func Optional() Arity {
	return Arity{min: 0, max: 1}
}

// Between returns an arity that consumes between min and max values.
func Between(min, max int) Arity {
	return Arity{min: min, max: max}
}

// AtLeast returns an unbounded arity that consumes min or more values,
// stopping at the next recognized option or subcommand.
func AtLeast(min int) Arity {
	return Arity{min: min, max: Unbounded}
}

// Greedy returns an arity that consumes min or more values and does not
// stop at recognized options, subcommands, or the trailing separator.
func Greedy(min int) Arity {
	return Arity{min: min, max: Unbounded, greedy: true}
}

// Min returns the minimum number of values.
func (a Arity) Min() int {
	return a.min
}

// Max returns the maximum number of values and whether it is bounded.
func (a Arity) Max() (int, bool) {
	if a.max == Unbounded {
		return 0, false
	}
	return a.max, true
}

// IsScalar reports whether the arity consumes at most one value and at
// least potentially one (exactly-one or optional-one). Scalar arities
// store bare values rather than lists.
func (a Arity) IsScalar() bool {
	return a.max == 1
}

// IsVariadic reports whether the arity may consume more than one value.
func (a Arity) IsVariadic() bool {
	return a.max == Unbounded || a.max > 1
}

// IsGreedy reports whether the arity consumes through recognized options,
// subcommands, and the trailing separator.
func (a Arity) IsGreedy() bool {
	return a.greedy
}

// IsUnboundedStoppable reports whether the arity is unbounded but stops at
// the next recognized option or subcommand.
func (a Arity) IsUnboundedStoppable() bool {
	return a.max == Unbounded && !a.greedy
}

// IsOptional reports whether the arity accepts zero values.
func (a Arity) IsOptional() bool {
	return a.min == 0
}

// IsZero reports whether the arity consumes no values at all.
func (a Arity) IsZero() bool {
	return a.min == 0 && a.max == 0
}

// Validate checks the arity invariants: min >= 0 and, when bounded,
// max >= min.
func (a Arity) Validate() error {
	if a.min < 0 {
		return NewParseError(ErrorTypeInvalidArity,
			fmt.Sprintf("arity minimum must be >= 0, got %d", a.min))
	}
	if a.max != Unbounded && a.max < a.min {
		return NewParseError(ErrorTypeInvalidArity,
			fmt.Sprintf("arity maximum %d is below minimum %d", a.max, a.min))
	}
	return nil
}

// String returns a compact human-readable form, used in error messages.
func (a Arity) String() string {
	switch {
	case a.greedy:
		return fmt.Sprintf("(%d...)", a.min)
	case a.max == Unbounded:
		return fmt.Sprintf("(%d..*)", a.min)
	case a.min == a.max:
		return fmt.Sprintf("%d", a.min)
	default:
		return fmt.Sprintf("(%d..%d)", a.min, a.max)
	}
}
