package argspec

import (
	"fmt"
	"unicode"
)

// OptionKind represents the kind of an option.
type OptionKind string

const (
	// KindFlag is a zero-value option producing a boolean or a count.
	KindFlag OptionKind = "flag"
	// KindScalar is an option producing a single string value.
	KindScalar OptionKind = "scalar"
	// KindList is an option producing ordered string values.
	KindList OptionKind = "list"
	// KindDict is an option producing key/value mappings.
	KindDict OptionKind = "dict"
)

// AccumulationMode is the policy for combining repeated occurrences of the
// same option. Which modes are legal depends on the option kind; see
// allowedModes.
type AccumulationMode string

const (
	ModeToggle AccumulationMode = "toggle"
	ModeCount  AccumulationMode = "count"
	ModeFirst  AccumulationMode = "first"
	ModeLast   AccumulationMode = "last"
	ModeError  AccumulationMode = "error"
	ModeAppend AccumulationMode = "append"
	ModeExtend AccumulationMode = "extend"
	ModeMerge  AccumulationMode = "merge"
)

// MergeStrategy selects how dict occurrences combine under ModeMerge.
type MergeStrategy string

const (
	// MergeShallow replaces top-level keys wholesale.
	MergeShallow MergeStrategy = "shallow"
	// MergeDeep merges nested maps recursively.
	MergeDeep MergeStrategy = "deep"
)

// allowedModes is the closed kind x mode matrix. Construction validation
// rejects any combination outside of it.
var allowedModes = map[OptionKind][]AccumulationMode{
	KindFlag:   {ModeToggle, ModeCount, ModeFirst, ModeLast, ModeError},
	KindScalar: {ModeFirst, ModeLast, ModeError},
	KindList:   {ModeFirst, ModeLast, ModeAppend, ModeExtend, ModeError},
	KindDict:   {ModeFirst, ModeLast, ModeMerge, ModeAppend, ModeError},
}

// defaultModes is applied when an option declares no accumulation mode.
var defaultModes = map[OptionKind]AccumulationMode{
	KindFlag:   ModeToggle,
	KindScalar: ModeLast,
	KindList:   ModeExtend,
	KindDict:   ModeMerge,
}

// Option is a single option specification. Exactly one kind is active; the
// kind-specific fields below only apply to their kind and are ignored
// otherwise. Options are immutable once the owning Command is built.
type Option struct {
	// Names holds all names of the option; the first is canonical.
	// Single-character names are short options, longer names are long
	// options.
	Names []string
	Kind  OptionKind
	Arity Arity
	// Mode defaults to the kind's default accumulation mode when empty.
	Mode AccumulationMode

	// Flag options only: negative names ("no-color") and an automatic
	// negative prefix applied to every long name. Occurrences matched
	// through either carry false polarity.
	NegativeNames  []string
	NegativePrefix string

	// AllowNegativeNumbers lets this option consume tokens matching the
	// negative-number pattern as values even when the global configuration
	// has the feature disabled.
	AllowNegativeNumbers bool

	// List options only: when SplitItems is set, every collected token is
	// re-split on ItemSeparator honoring EscapeCharacter. Empty separator
	// and escape fall back to the configured defaults.
	SplitItems      bool
	ItemSeparator   string
	EscapeCharacter string

	// Dict options only.
	KeyValueSeparator string // empty = Config.KeyValueSeparator
	Merge             MergeStrategy
}

// Canonical returns the canonical (first) name of the option.
func (o *Option) Canonical() string {
	return o.Names[0]
}

// AcceptsValues reports whether the option consumes at least one value
// token in some occurrence. Flags never do.
func (o *Option) AcceptsValues() bool {
	return !o.Arity.IsZero()
}

// mode returns the effective accumulation mode.
func (o *Option) mode() AccumulationMode {
	if o.Mode == "" {
		return defaultModes[o.Kind]
	}
	return o.Mode
}

// mergeStrategy returns the effective merge strategy for dict options.
func (o *Option) mergeStrategy() MergeStrategy {
	if o.Merge == "" {
		return MergeShallow
	}
	return o.Merge
}

// Validate checks the option invariants: at least one well-formed name, a
// legal kind/mode combination, and a kind-compatible arity.
func (o *Option) Validate() error {
	if len(o.Names) == 0 {
		return NewParseError(ErrorTypeInvalidConfiguration, "option has no names")
	}
	for _, name := range o.Names {
		if err := validateName(name, "option"); err != nil {
			return err
		}
	}
	for _, name := range o.NegativeNames {
		if err := validateName(name, "negative option"); err != nil {
			return err
		}
	}

	switch o.Kind {
	case KindFlag, KindScalar, KindList, KindDict:
	default:
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("option %q has unknown kind %q", o.Canonical(), o.Kind))
	}

	if o.Kind != KindFlag && (len(o.NegativeNames) > 0 || o.NegativePrefix != "") {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("option %q: negative names are only valid for flags", o.Canonical()))
	}

	mode := o.mode()
	if !modeAllowed(o.Kind, mode) {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("option %q: mode %q is not valid for kind %q", o.Canonical(), mode, o.Kind))
	}

	if err := o.Arity.Validate(); err != nil {
		return err
	}
	switch o.Kind {
	case KindFlag:
		if !o.Arity.IsZero() {
			return NewParseError(ErrorTypeInvalidArity,
				fmt.Sprintf("flag option %q must have zero arity, got %s", o.Canonical(), o.Arity))
		}
	case KindScalar:
		if !o.Arity.IsScalar() {
			return NewParseError(ErrorTypeInvalidArity,
				fmt.Sprintf("scalar option %q must take exactly one or an optional value, got %s",
					o.Canonical(), o.Arity))
		}
	case KindList, KindDict:
		if o.Arity.IsZero() {
			return NewParseError(ErrorTypeInvalidArity,
				fmt.Sprintf("%s option %q must accept at least one value", o.Kind, o.Canonical()))
		}
	}

	if len(o.EscapeCharacter) > 1 {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("option %q: escape character must be a single character", o.Canonical()))
	}

	if o.Kind == KindDict {
		switch o.mergeStrategy() {
		case MergeShallow, MergeDeep:
		default:
			return NewParseError(ErrorTypeInvalidConfiguration,
				fmt.Sprintf("option %q has unknown merge strategy %q", o.Canonical(), o.Merge))
		}
	}

	return nil
}

func modeAllowed(kind OptionKind, mode AccumulationMode) bool {
	for _, m := range allowedModes[kind] {
		if m == mode {
			return true
		}
	}
	return false
}

// validateName enforces the name pattern shared by options, positionals,
// and commands: it must start with a letter or digit and may contain
// letters, digits, hyphens, and underscores.
func validateName(name, what string) error {
	if name == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("%s name must not be empty", what))
	}
	for i, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && (r == '-' || r == '_') {
			continue
		}
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("%s name %q contains invalid character %q", what, name, r))
	}
	return nil
}
