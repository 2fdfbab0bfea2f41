package argspec

import (
	"fmt"
	"strings"
)

// splitEscaped splits token on sep, treating esc as an escape character:
// an escaped separator is literal, an escaped escape is a single escape.
// An empty esc disables escaping. sep must be non-empty.
func splitEscaped(token, sep, esc string) []string {
	if esc == "" {
		return strings.Split(token, sep)
	}

	var items []string
	var cur strings.Builder
	for i := 0; i < len(token); {
		if strings.HasPrefix(token[i:], esc) {
			rest := token[i+len(esc):]
			switch {
			case strings.HasPrefix(rest, sep):
				cur.WriteString(sep)
				i += len(esc) + len(sep)
			case strings.HasPrefix(rest, esc):
				cur.WriteString(esc)
				i += 2 * len(esc)
			default:
				// Dangling escape is kept literally.
				cur.WriteString(esc)
				i += len(esc)
			}
			continue
		}
		if strings.HasPrefix(token[i:], sep) {
			items = append(items, cur.String())
			cur.Reset()
			i += len(sep)
			continue
		}
		cur.WriteByte(token[i])
		i++
	}
	items = append(items, cur.String())
	return items
}

// joinEscaped is the inverse of splitEscaped: it escapes separator and
// escape occurrences in each item and joins with sep.
func joinEscaped(items []string, sep, esc string) string {
	if esc == "" {
		return strings.Join(items, sep)
	}
	escaped := make([]string, len(items))
	for i, item := range items {
		item = strings.ReplaceAll(item, esc, esc+esc)
		item = strings.ReplaceAll(item, sep, esc+sep)
		escaped[i] = item
	}
	return strings.Join(escaped, sep)
}

// cutEscaped splits token at the first unescaped occurrence of sep.
func cutEscaped(token, sep, esc string) (before, after string, found bool) {
	if esc == "" {
		return strings.Cut(token, sep)
	}
	parts := splitEscaped(token, sep, esc)
	if len(parts) == 1 {
		return token, "", false
	}
	// Re-join everything after the first separator, re-escaping so the
	// value side keeps its original meaning.
	return parts[0], joinEscaped(parts[1:], sep, esc), true
}

// expandListValues applies item-separator splitting to a collected run of
// list-option tokens when the option enables it.
func expandListValues(opt *Option, cfg *Config, run []string) []string {
	if !opt.SplitItems {
		return run
	}
	sep := cfg.itemSeparator(opt)
	esc := cfg.valueEscape(opt)
	out := make([]string, 0, len(run))
	for _, tok := range run {
		out = append(out, splitEscaped(tok, sep, esc)...)
	}
	return out
}

// parseDictValues converts a collected run of dict-option tokens into one
// map for this occurrence. Every token must contain the key-value
// separator; tokens without one are a parse error naming the token.
// With AllowNestedDictKeys enabled, keys containing the nesting separator
// produce nested maps.
func parseDictValues(opt *Option, cfg *Config, run []string) (map[string]any, error) {
	sep := cfg.kvSeparator(opt)
	esc := cfg.DictEscapeCharacter

	tokens := run
	if opt.SplitItems {
		split := make([]string, 0, len(run))
		for _, tok := range run {
			split = append(split, splitEscaped(tok, cfg.itemSeparator(opt), esc)...)
		}
		tokens = split
	}

	occurrence := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		key, value, found := cutEscaped(tok, sep, esc)
		if !found {
			return nil, NewParseError(ErrorTypeInvalidValue,
				fmt.Sprintf("option %q: value %q is missing the %q key-value separator",
					opt.Canonical(), tok, sep)).withName(opt.Canonical())
		}
		if esc != "" {
			value = unescape(value, sep, esc)
		}
		if cfg.AllowNestedDictKeys && cfg.NestingSeparator != "" &&
			strings.Contains(key, cfg.NestingSeparator) {
			storeNested(occurrence, strings.Split(key, cfg.NestingSeparator), value)
			continue
		}
		occurrence[key] = value
	}
	return occurrence, nil
}

// unescape removes escaping of sep and esc from a final value.
func unescape(s, sep, esc string) string {
	s = strings.ReplaceAll(s, esc+sep, sep)
	s = strings.ReplaceAll(s, esc+esc, esc)
	return s
}

// storeNested writes value into nested maps along the key path, creating
// intermediate maps and overwriting non-map intermediates.
func storeNested(m map[string]any, path []string, value string) {
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
