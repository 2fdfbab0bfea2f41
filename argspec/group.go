package argspec

import "fmt"

// posToken is an ungrouped positional token together with its original
// index in the full argument list, kept for error reporting.
type posToken struct {
	value string
	index int
}

// groupPositionals distributes the ungrouped positional tokens collected
// during scanning across the command's declared positional slots, in
// order. Each slot takes as many tokens as its arity allows while leaving
// at least the sum of the minimums of all later slots. Leftover tokens are
// handled per the configured strategy.
func groupPositionals(cmd *Command, cfg *Config, tokens []posToken) (map[string]any, error) {
	grouped := make(map[string]any, len(cmd.Positionals)+1)
	pos := 0

	for i, spec := range cmd.Positionals {
		remaining := len(tokens) - pos
		if remaining < spec.Arity.Min() {
			return nil, NewParseError(ErrorTypePositionalMissingValue,
				fmt.Sprintf("positional %q requires at least %d value(s), got %d",
					spec.Name, spec.Arity.Min(), remaining)).
				withName(spec.Name).
				withCounts(spec.Arity.Min(), remaining)
		}

		subsequentMin := 0
		for _, later := range cmd.Positionals[i+1:] {
			subsequentMin += later.Arity.Min()
		}

		take := remaining - subsequentMin
		if max, bounded := spec.Arity.Max(); bounded && take > max {
			take = max
		}
		if take < spec.Arity.Min() {
			return nil, NewParseError(ErrorTypePositionalMissingValue,
				fmt.Sprintf("positional %q requires at least %d value(s), got %d before later positionals",
					spec.Name, spec.Arity.Min(), take)).
				withName(spec.Name).
				withCounts(spec.Arity.Min(), take)
		}

		if spec.Arity.IsScalar() {
			if take > 0 {
				grouped[spec.Name] = tokens[pos].value
			}
			// Optional scalar with no token available stays absent.
		} else {
			values := make([]string, take)
			for j := 0; j < take; j++ {
				values[j] = tokens[pos+j].value
			}
			grouped[spec.Name] = values
		}
		pos += take
	}

	if pos < len(tokens) {
		leftover := tokens[pos:]
		switch cfg.UngroupedPositionalStrategy {
		case PositionalIgnore:
			// Dropped silently.
		case PositionalCollect:
			values := make([]string, len(leftover))
			for i, tok := range leftover {
				values[i] = tok.value
			}
			grouped[cfg.UngroupedPositionalName] = values
		case PositionalError:
			first := leftover[0]
			return nil, NewParseError(ErrorTypePositionalUnexpectedValue,
				fmt.Sprintf("unexpected positional value %q at position %d",
					first.value, first.index)).
				at(nil, nil, first.index).
				withName(first.value)
		}
	}

	return grouped, nil
}
