package argspec

// Result is the immutable outcome of parsing one command level. Results
// form a singly-linked chain from the root command down to the chosen
// leaf subcommand; each level is built bottom-up from its parse context
// and never mutated after Parse returns.
type Result struct {
	// Args echoes the raw tokens this level scanned (from the level's
	// first token through the end of input).
	Args []string
	// Command is the declared name of the command at this level.
	Command string
	// Options maps canonical option names to accumulated values. The value
	// shape depends on kind, arity, and accumulation mode: string, bool,
	// int count, []string, [][]string, map[string]any, or
	// []map[string]any.
	Options map[string]any
	// Positionals maps positional names (and the configured synthetic
	// leftover name) to a string or []string.
	Positionals map[string]any
	// Trailing holds the opaque tokens captured after the trailing
	// arguments separator.
	Trailing []string
	// Sub links to the nested result of the chosen subcommand, nil at the
	// leaf.
	Sub *Result
}

// Leaf walks the subcommand chain and returns the deepest result.
func (r *Result) Leaf() *Result {
	cur := r
	for cur.Sub != nil {
		cur = cur.Sub
	}
	return cur
}

// Path returns the command names from this level down to the leaf.
func (r *Result) Path() []string {
	var path []string
	for cur := r; cur != nil; cur = cur.Sub {
		path = append(path, cur.Command)
	}
	return path
}

// At returns the result for the given subcommand path below this level,
// or nil when the parse chose a different path.
func (r *Result) At(path ...string) *Result {
	cur := r
	for _, name := range path {
		if cur.Sub == nil || cur.Sub.Command != name {
			return nil
		}
		cur = cur.Sub
	}
	return cur
}

// Option value accessors. Each Get returns the value and whether the
// option was present with that shape; each MustGet falls back to a
// default.

// GetString returns a scalar option value (or a scalar-arity list value).
func (r *Result) GetString(name string) (string, bool) {
	v, ok := r.Options[name].(string)
	return v, ok
}

// MustGetString returns the string value or the given default.
func (r *Result) MustGetString(name, defaultValue string) string {
	if v, ok := r.GetString(name); ok {
		return v
	}
	return defaultValue
}

// GetBool returns a flag value.
func (r *Result) GetBool(name string) (bool, bool) {
	v, ok := r.Options[name].(bool)
	return v, ok
}

// MustGetBool returns the flag value or the given default.
func (r *Result) MustGetBool(name string, defaultValue bool) bool {
	if v, ok := r.GetBool(name); ok {
		return v
	}
	return defaultValue
}

// GetCount returns a counting-flag value.
func (r *Result) GetCount(name string) (int, bool) {
	v, ok := r.Options[name].(int)
	return v, ok
}

// MustGetCount returns the count or the given default.
func (r *Result) MustGetCount(name string, defaultValue int) int {
	if v, ok := r.GetCount(name); ok {
		return v
	}
	return defaultValue
}

// GetStrings returns a flat list value.
func (r *Result) GetStrings(name string) ([]string, bool) {
	v, ok := r.Options[name].([]string)
	return v, ok
}

// MustGetStrings returns the list or the given default.
func (r *Result) MustGetStrings(name string, defaultValue []string) []string {
	if v, ok := r.GetStrings(name); ok {
		return v
	}
	return defaultValue
}

// GetRuns returns a nested list value (append-mode lists, one run per
// occurrence).
func (r *Result) GetRuns(name string) ([][]string, bool) {
	v, ok := r.Options[name].([][]string)
	return v, ok
}

// GetMap returns a dict value.
func (r *Result) GetMap(name string) (map[string]any, bool) {
	v, ok := r.Options[name].(map[string]any)
	return v, ok
}

// GetMaps returns an append-mode dict value, one map per occurrence.
func (r *Result) GetMaps(name string) ([]map[string]any, bool) {
	v, ok := r.Options[name].([]map[string]any)
	return v, ok
}

// Has reports whether the option occurred at all (including occurrences
// that stored a nil value, such as an optional scalar given no value).
func (r *Result) Has(name string) bool {
	_, ok := r.Options[name]
	return ok
}

// Positional accessors.

// GetPositional returns a scalar positional value.
func (r *Result) GetPositional(name string) (string, bool) {
	v, ok := r.Positionals[name].(string)
	return v, ok
}

// GetPositionals returns a list positional value.
func (r *Result) GetPositionals(name string) ([]string, bool) {
	v, ok := r.Positionals[name].([]string)
	return v, ok
}

// Flatten returns a debug representation of the whole result chain: one
// map whose keys are dotted command paths ending in the option or
// positional name ("git.commit.message"). Trailing arguments appear under
// the "..." key of their level.
func (r *Result) Flatten() map[string]any {
	flat := make(map[string]any)
	prefix := ""
	for cur := r; cur != nil; cur = cur.Sub {
		prefix += cur.Command + "."
		for name, value := range cur.Options {
			flat[prefix+name] = value
		}
		for name, value := range cur.Positionals {
			flat[prefix+name] = value
		}
		if len(cur.Trailing) > 0 {
			flat[prefix+"..."] = cur.Trailing
		}
	}
	return flat
}
