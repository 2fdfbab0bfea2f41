package argspec

import (
	"fmt"
	"strings"

	"github.com/dzonerzy/go-argspec/internal/fuzzy"
)

// ErrorType categorizes parse and construction failures.
type ErrorType string

const (
	ErrorTypeUnknownOption             ErrorType = "unknown_option"
	ErrorTypeAmbiguousOption           ErrorType = "ambiguous_option"
	ErrorTypeOptionMissingValue        ErrorType = "option_missing_value"
	ErrorTypeOptionValueNotAllowed     ErrorType = "option_value_not_allowed"
	ErrorTypeOptionNotRepeatable       ErrorType = "option_not_repeatable"
	ErrorTypeUnknownSubcommand         ErrorType = "unknown_subcommand"
	ErrorTypeAmbiguousSubcommand       ErrorType = "ambiguous_subcommand"
	ErrorTypePositionalMissingValue    ErrorType = "positional_missing_value"
	ErrorTypePositionalUnexpectedValue ErrorType = "positional_unexpected_value"
	ErrorTypeInvalidValue              ErrorType = "invalid_value"
	ErrorTypeArgumentFile              ErrorType = "argument_file"

	// Construction-time errors, raised before any parsing begins.
	ErrorTypeInvalidConfiguration ErrorType = "invalid_configuration"
	ErrorTypeInvalidArity         ErrorType = "invalid_arity"
)

// ParseError is the typed failure returned for malformed input or invalid
// specification/configuration. Parsing is fail-fast: the first ParseError
// aborts the parse and no partial result is returned.
type ParseError struct {
	Type    ErrorType
	Message string

	// Context populated by the engine for parse-time errors.
	CommandPath []string // root command to the level where the error occurred
	Args        []string // full token list handed to Parse
	Position    int      // index of the offending token in Args, -1 if unknown
	Name        string   // offending option/positional/subcommand name, if any
	Candidates  []string // resolver candidates for ambiguous matches
	Suggestion  string   // "did you mean" hint for unknown names
	Required    int      // values required (missing-value errors)
	Received    int      // values actually available
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Candidates) > 0 {
		b.WriteString(" (candidates: ")
		b.WriteString(strings.Join(e.Candidates, ", "))
		b.WriteString(")")
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(" (did you mean %q?)", e.Suggestion))
	}
	return b.String()
}

// NewParseError creates a ParseError with the given type and message.
func NewParseError(errType ErrorType, message string) *ParseError {
	return &ParseError{
		Type:     errType,
		Message:  message,
		Position: -1,
	}
}

// at attaches engine context to the error and returns it.
func (e *ParseError) at(path []string, args []string, position int) *ParseError {
	e.CommandPath = path
	e.Args = args
	e.Position = position
	return e
}

// withName records the offending name.
func (e *ParseError) withName(name string) *ParseError {
	e.Name = name
	return e
}

// withCandidates records ambiguity candidates.
func (e *ParseError) withCandidates(candidates []string) *ParseError {
	e.Candidates = candidates
	return e
}

// withCounts records required/received value counts.
func (e *ParseError) withCounts(required, received int) *ParseError {
	e.Required = required
	e.Received = received
	return e
}

// withSuggestion attaches the best fuzzy match among the given candidates,
// if one is close enough to the input.
func (e *ParseError) withSuggestion(input string, candidates []string) *ParseError {
	e.Suggestion = fuzzy.FindBest(input, candidates, suggestionMaxDistance)
	return e
}

// suggestionMaxDistance is the edit-distance cutoff for "did you mean"
// hints on unknown option/subcommand errors.
const suggestionMaxDistance = 2

// DefectError reports an internal invariant violation: a condition no
// well-formed specification and configuration can trigger through user
// input alone. It is deliberately distinct from ParseError so callers can
// tell defects apart from malformed command lines.
type DefectError struct {
	Message string
}

func (e *DefectError) Error() string {
	return "argspec: internal defect: " + e.Message
}

func newDefect(format string, args ...any) *DefectError {
	return &DefectError{Message: fmt.Sprintf(format, args...)}
}
