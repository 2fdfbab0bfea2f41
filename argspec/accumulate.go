package argspec

import "fmt"

// accumulate combines a newly parsed occurrence of an option with the
// prior accumulated value for that option, according to the option's kind
// and accumulation mode.
//
// The occurrence value is kind-shaped: bool polarity for flags, a string
// (or nil for an optional value that was absent) for scalars, the
// collected []string run for lists, and a map[string]any for dicts.
// The returned value owns its storage; occurrence slices may be reused by
// the caller afterwards.
func accumulate(opt *Option, prior any, hasPrior bool, occ any) (any, error) {
	switch opt.Kind {
	case KindFlag:
		return accumulateFlag(opt, prior, hasPrior, occ.(bool))
	case KindScalar:
		return accumulateScalar(opt, prior, hasPrior, occ)
	case KindList:
		return accumulateList(opt, prior, hasPrior, occ.([]string))
	case KindDict:
		return accumulateDict(opt, prior, hasPrior, occ.(map[string]any))
	default:
		return nil, newDefect("accumulate: unknown option kind %q", opt.Kind)
	}
}

func accumulateFlag(opt *Option, prior any, hasPrior bool, polarity bool) (any, error) {
	switch opt.mode() {
	case ModeToggle, ModeLast:
		return polarity, nil
	case ModeFirst:
		if hasPrior {
			return prior, nil
		}
		return polarity, nil
	case ModeError:
		if hasPrior {
			return nil, notRepeatable(opt, prior, polarity)
		}
		return polarity, nil
	case ModeCount:
		count := 0
		if hasPrior {
			count = prior.(int)
		}
		// Negative occurrences are no-ops; the count never decrements.
		if polarity {
			count++
		}
		return count, nil
	default:
		return nil, newDefect("flag option %q: unreachable mode %q", opt.Canonical(), opt.mode())
	}
}

func accumulateScalar(opt *Option, prior any, hasPrior bool, value any) (any, error) {
	switch opt.mode() {
	case ModeLast:
		return value, nil
	case ModeFirst:
		if hasPrior {
			return prior, nil
		}
		return value, nil
	case ModeError:
		if hasPrior {
			return nil, notRepeatable(opt, prior, value)
		}
		return value, nil
	default:
		return nil, newDefect("scalar option %q: unreachable mode %q", opt.Canonical(), opt.mode())
	}
}

func accumulateList(opt *Option, prior any, hasPrior bool, run []string) (any, error) {
	switch opt.mode() {
	case ModeLast:
		return shapeListRun(opt, run), nil
	case ModeFirst:
		if hasPrior {
			return prior, nil
		}
		return shapeListRun(opt, run), nil
	case ModeError:
		if hasPrior {
			return nil, notRepeatable(opt, prior, run)
		}
		return shapeListRun(opt, run), nil
	case ModeExtend:
		if !hasPrior {
			return copyRun(run), nil
		}
		return append(prior.([]string), run...), nil
	case ModeAppend:
		if !hasPrior {
			return [][]string{copyRun(run)}, nil
		}
		return append(prior.([][]string), copyRun(run)), nil
	default:
		return nil, newDefect("list option %q: unreachable mode %q", opt.Canonical(), opt.mode())
	}
}

func accumulateDict(opt *Option, prior any, hasPrior bool, occ map[string]any) (any, error) {
	switch opt.mode() {
	case ModeLast:
		return occ, nil
	case ModeFirst:
		if hasPrior {
			return prior, nil
		}
		return occ, nil
	case ModeError:
		if hasPrior {
			return nil, notRepeatable(opt, prior, occ)
		}
		return occ, nil
	case ModeMerge:
		if !hasPrior {
			return occ, nil
		}
		merged := prior.(map[string]any)
		if opt.mergeStrategy() == MergeDeep {
			deepMerge(merged, occ)
		} else {
			for k, v := range occ {
				merged[k] = v
			}
		}
		return merged, nil
	case ModeAppend:
		if !hasPrior {
			return []map[string]any{occ}, nil
		}
		return append(prior.([]map[string]any), occ), nil
	default:
		return nil, newDefect("dict option %q: unreachable mode %q", opt.Canonical(), opt.mode())
	}
}

// deepMerge merges src into dst recursively: nested maps combine, every
// other value overwrites.
func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
}

// shapeListRun applies the load-bearing shape rule: a scalar-arity list
// under first/last/error stores a bare string (nil when optional and
// absent); every other combination stores an ordered list. Item splitting
// can widen a scalar-arity run past one element, in which case the run
// stays a list.
func shapeListRun(opt *Option, run []string) any {
	if opt.Arity.IsScalar() {
		switch len(run) {
		case 0:
			return nil
		case 1:
			return run[0]
		}
	}
	return copyRun(run)
}

func copyRun(run []string) []string {
	out := make([]string, len(run))
	copy(out, run)
	return out
}

func notRepeatable(opt *Option, prior, received any) *ParseError {
	return NewParseError(ErrorTypeOptionNotRepeatable,
		fmt.Sprintf("option %q may not be repeated (current value %v, received %v)",
			opt.Canonical(), prior, received)).withName(opt.Canonical())
}
