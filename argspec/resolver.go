package argspec

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-argspec/internal/norm"
)

// MatchState is the three-way outcome of a name resolution.
type MatchState int

const (
	// MatchFound means exactly one specification matched.
	MatchFound MatchState = iota
	// MatchNotFound means nothing matched.
	MatchNotFound
	// MatchAmbiguous means an abbreviation matched more than one name.
	MatchAmbiguous
)

// OptionMatch is the result of resolving an option name fragment.
type OptionMatch struct {
	State      MatchState
	Option     *Option
	Negated    bool     // matched through a negative name or prefix
	Candidates []string // normalized names, populated for MatchAmbiguous
}

// CommandMatch is the result of resolving a subcommand token.
type CommandMatch struct {
	State      MatchState
	Command    *Command
	Candidates []string
}

// optionEntry binds a normalized name to its option and polarity.
type optionEntry struct {
	opt     *Option
	negated bool
}

// Resolver maps raw token fragments to specifications for one command
// level. It is built once per level at parser construction and is
// read-only afterwards, so it may be shared across concurrent parses.
type Resolver struct {
	cfg     *Config
	optFold *norm.Folder
	cmdFold *norm.Folder

	options   map[string]optionEntry
	longNames []string // sorted normalized long names, abbreviation pool

	commands map[string]*Command
	cmdNames []string // sorted normalized command names and aliases
}

// newResolver indexes the command's options and subcommands under the
// configured normalization, rejecting any name collision.
func newResolver(cmd *Command, cfg *Config, optFold, cmdFold *norm.Folder) (*Resolver, error) {
	r := &Resolver{
		cfg:      cfg,
		optFold:  optFold,
		cmdFold:  cmdFold,
		options:  make(map[string]optionEntry, len(cmd.Options)*2),
		commands: make(map[string]*Command, len(cmd.Subcommands)),
	}

	for _, opt := range cmd.Options {
		for _, name := range opt.Names {
			if err := r.addOptionName(cmd, name, opt, false); err != nil {
				return nil, err
			}
		}
		for _, name := range opt.NegativeNames {
			if err := r.addOptionName(cmd, name, opt, true); err != nil {
				return nil, err
			}
		}
		if opt.NegativePrefix != "" {
			for _, name := range opt.Names {
				if utf8.RuneCountInString(name) > 1 {
					if err := r.addOptionName(cmd, opt.NegativePrefix+name, opt, true); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	sort.Strings(r.longNames)

	for _, sub := range cmd.Subcommands {
		if err := r.addCommandName(cmd, sub.Name, sub); err != nil {
			return nil, err
		}
		for _, alias := range sub.Aliases {
			if err := r.addCommandName(cmd, alias, sub); err != nil {
				return nil, err
			}
		}
	}
	sort.Strings(r.cmdNames)

	return r, nil
}

func (r *Resolver) addOptionName(cmd *Command, name string, opt *Option, negated bool) error {
	folded := r.optFold.Fold(name)
	if _, exists := r.options[folded]; exists {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("command %q: option name %q collides under the configured normalization",
				cmd.Name, name))
	}
	r.options[folded] = optionEntry{opt: opt, negated: negated}
	if utf8.RuneCountInString(folded) > 1 {
		r.longNames = append(r.longNames, folded)
	}
	return nil
}

func (r *Resolver) addCommandName(cmd *Command, name string, sub *Command) error {
	folded := r.cmdFold.Fold(name)
	if _, exists := r.commands[folded]; exists {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("command %q: subcommand name %q collides under the configured normalization",
				cmd.Name, name))
	}
	r.commands[folded] = sub
	r.cmdNames = append(r.cmdNames, folded)
	return nil
}

// ResolveOption resolves an option name fragment by exact (normalized)
// match only.
func (r *Resolver) ResolveOption(name string) OptionMatch {
	if entry, ok := r.options[r.optFold.Fold(name)]; ok {
		return OptionMatch{State: MatchFound, Option: entry.opt, Negated: entry.negated}
	}
	return OptionMatch{State: MatchNotFound}
}

// ResolveOptionAbbreviated resolves a long-option fragment as an
// unambiguous prefix of exactly one declared name. It is only consulted
// after exact matching fails; an exact name therefore always wins even
// when it is also a prefix of a longer name.
func (r *Resolver) ResolveOptionAbbreviated(name string) OptionMatch {
	folded := r.optFold.Fold(name)
	if utf8.RuneCountInString(folded) < r.cfg.MinimumAbbreviationLength {
		return OptionMatch{State: MatchNotFound}
	}

	var candidates []string
	var first optionEntry
	distinct := 0
	for _, long := range r.longNames {
		if !strings.HasPrefix(long, folded) {
			continue
		}
		entry := r.options[long]
		if distinct == 0 || entry != first {
			if distinct == 0 {
				first = entry
			}
			distinct++
		}
		candidates = append(candidates, long)
	}

	switch distinct {
	case 0:
		return OptionMatch{State: MatchNotFound}
	case 1:
		return OptionMatch{State: MatchFound, Option: first.opt, Negated: first.negated}
	default:
		return OptionMatch{State: MatchAmbiguous, Candidates: candidates}
	}
}

// ResolveOptionPrefix resolves a long-option fragment where a declared
// name is a proper prefix of the fragment and the remainder is an inline
// value ("--out/tmp" for option "out"). Enabled by
// AllowInlineValuesWithoutEquals. The declared-name match must be
// unambiguous; more than one matching name is MatchAmbiguous.
func (r *Resolver) ResolveOptionPrefix(fragment string) (OptionMatch, string) {
	folded := r.optFold.Fold(fragment)

	var candidates []string
	var found optionEntry
	var inline string
	for _, long := range r.longNames {
		if len(long) >= len(folded) || !strings.HasPrefix(folded, long) {
			continue
		}
		if len(candidates) == 0 || len(long) > len(candidates[len(candidates)-1]) {
			found = r.options[long]
			inline = fragment[len(long):]
		}
		candidates = append(candidates, long)
	}

	switch len(candidates) {
	case 0:
		return OptionMatch{State: MatchNotFound}, ""
	case 1:
		return OptionMatch{State: MatchFound, Option: found.opt, Negated: found.negated}, inline
	default:
		return OptionMatch{State: MatchAmbiguous, Candidates: candidates}, ""
	}
}

// ResolveSubcommand resolves a subcommand token by exact (normalized)
// match against declared names and aliases.
func (r *Resolver) ResolveSubcommand(token string) CommandMatch {
	if sub, ok := r.commands[r.cmdFold.Fold(token)]; ok {
		return CommandMatch{State: MatchFound, Command: sub}
	}
	return CommandMatch{State: MatchNotFound}
}

// ResolveSubcommandAbbreviated mirrors ResolveOptionAbbreviated for
// subcommand names and aliases.
func (r *Resolver) ResolveSubcommandAbbreviated(token string) CommandMatch {
	folded := r.cmdFold.Fold(token)
	if utf8.RuneCountInString(folded) < r.cfg.MinimumAbbreviationLength {
		return CommandMatch{State: MatchNotFound}
	}

	var candidates []string
	var first *Command
	distinct := 0
	for _, name := range r.cmdNames {
		if !strings.HasPrefix(name, folded) {
			continue
		}
		sub := r.commands[name]
		if distinct == 0 || sub != first {
			if distinct == 0 {
				first = sub
			}
			distinct++
		}
		candidates = append(candidates, name)
	}

	switch distinct {
	case 0:
		return CommandMatch{State: MatchNotFound}
	case 1:
		return CommandMatch{State: MatchFound, Command: first}
	default:
		return CommandMatch{State: MatchAmbiguous, Candidates: candidates}
	}
}

// IsOptionOrSubcommand reports whether the token would be recognized at
// this level, applying the same prefix, case, and abbreviation rules as
// the full resolvers. Value collectors use it to decide where a variadic
// run stops; only existence matters, not which spec matched.
func (r *Resolver) IsOptionOrSubcommand(token string) bool {
	if strings.HasPrefix(token, r.cfg.LongNamePrefix) && token != r.cfg.LongNamePrefix {
		name := token[len(r.cfg.LongNamePrefix):]
		if idx := strings.Index(name, r.cfg.OptionValueSeparator); idx >= 0 {
			name = name[:idx]
		}
		if r.ResolveOption(name).State == MatchFound {
			return true
		}
		if r.cfg.AllowAbbreviatedOptions &&
			r.ResolveOptionAbbreviated(name).State != MatchNotFound {
			return true
		}
		if r.cfg.AllowInlineValuesWithoutEquals {
			if m, _ := r.ResolveOptionPrefix(name); m.State != MatchNotFound {
				return true
			}
		}
		return false
	}

	if strings.HasPrefix(token, r.cfg.ShortNamePrefix) && token != r.cfg.ShortNamePrefix {
		rest := token[len(r.cfg.ShortNamePrefix):]
		first, _ := utf8.DecodeRuneInString(rest)
		return r.ResolveOption(string(first)).State == MatchFound
	}

	if r.ResolveSubcommand(token).State == MatchFound {
		return true
	}
	if r.cfg.AllowAbbreviatedSubcommands &&
		r.ResolveSubcommandAbbreviated(token).State != MatchNotFound {
		return true
	}
	return false
}

// OptionNames returns the normalized long-option names, used for
// suggestions in unknown-option errors.
func (r *Resolver) OptionNames() []string {
	return r.longNames
}

// CommandNames returns the normalized subcommand names and aliases, used
// for suggestions in unknown-subcommand errors.
func (r *Resolver) CommandNames() []string {
	return r.cmdNames
}
