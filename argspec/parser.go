package argspec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dzonerzy/go-argspec/internal/norm"
	"github.com/dzonerzy/go-argspec/internal/pool"
)

// Parser drives the recursive parse of a token list against a
// specification tree. It precomputes one resolver per command level, so
// construction surfaces every name collision, invalid arity, and invalid
// configuration before the first token is examined. A Parser is immutable
// after construction and safe for concurrent Parse calls.
type Parser struct {
	spec      *Command
	cfg       *Config
	resolvers map[*Command]*Resolver
	negNumber *regexp.Regexp
}

// NewParser validates the specification tree and configuration and builds
// a parser. A nil cfg means DefaultConfig().
func NewParser(spec *Command, cfg *Config) (*Parser, error) {
	if spec == nil {
		return nil, NewParseError(ErrorTypeInvalidConfiguration, "specification must not be nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	pattern := cfg.NegativeNumberPattern
	if pattern == "" {
		pattern = DefaultNegativeNumberPattern
	}
	negNumber, err := regexp.Compile(pattern)
	if err != nil {
		return nil, NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("negative number pattern does not compile: %v", err))
	}

	p := &Parser{
		spec:      spec,
		cfg:       cfg,
		resolvers: make(map[*Command]*Resolver),
		negNumber: negNumber,
	}

	// Folders are shared across levels; normalization policy is global.
	optFold := norm.NewFolder(cfg.CaseSensitiveOptions, cfg.ConvertUnderscores)
	cmdFold := norm.NewFolder(cfg.CaseSensitiveCommands, cfg.ConvertUnderscores)
	if err := p.buildResolvers(spec, optFold, cmdFold); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) buildResolvers(cmd *Command, optFold, cmdFold *norm.Folder) error {
	resolver, err := newResolver(cmd, p.cfg, optFold, cmdFold)
	if err != nil {
		return err
	}
	p.resolvers[cmd] = resolver
	for _, sub := range cmd.Subcommands {
		if err := p.buildResolvers(sub, optFold, cmdFold); err != nil {
			return err
		}
	}
	return nil
}

// Parse is a convenience wrapper constructing a one-shot parser.
func Parse(spec *Command, cfg *Config, args []string) (*Result, error) {
	p, err := NewParser(spec, cfg)
	if err != nil {
		return nil, err
	}
	return p.Parse(args)
}

// Parse converts the token list into a Result chain. Parsing is fail-fast
// and all-or-nothing: the first error aborts and no partial result is
// returned. The args slice is not mutated.
func (p *Parser) Parse(args []string) (*Result, error) {
	cursor := NewCursor(args)
	result, err := p.parseLevel(p.spec, []string{p.spec.Name}, cursor, args)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// levelContext is the mutable per-level parse state. It is exclusively
// owned by one parseLevel call frame and converted into an immutable
// Result before that frame returns.
type levelContext struct {
	options   map[string]any
	ungrouped []posToken
	trailing  []string
	inTrail   bool
}

func (ctx *levelContext) store(opt *Option, occ any) error {
	name := opt.Canonical()
	prior, has := ctx.options[name]
	value, err := accumulate(opt, prior, has, occ)
	if err != nil {
		return err
	}
	ctx.options[name] = value
	return nil
}

// parseLevel runs the per-command-level state machine: scan tokens until a
// subcommand is chosen or input runs out, then group positionals and
// assemble the level's Result.
func (p *Parser) parseLevel(cmd *Command, path []string, cursor *Cursor, args []string) (*Result, error) {
	levelArgs := append([]string(nil), cursor.PeekN(cursor.Remaining())...)
	ctx := &levelContext{options: make(map[string]any)}
	resolver := p.resolvers[cmd]

	var sub *Command
	for !cursor.AtEnd() && sub == nil {
		token, _ := cursor.Current()
		position := cursor.Position()

		switch {
		case ctx.inTrail:
			// Everything after the separator is opaque, separators included.
			ctx.trailing = append(ctx.trailing, token)
			cursor.Advance(1)

		case token == p.cfg.TrailingArgumentsSeparator:
			ctx.inTrail = true
			cursor.Advance(1)

		case p.cfg.StrictPosixOptions && len(ctx.ungrouped) > 0:
			// Options may no longer interrupt positionals.
			ctx.ungrouped = append(ctx.ungrouped, posToken{value: token, index: position})
			cursor.Advance(1)

		case strings.HasPrefix(token, p.cfg.LongNamePrefix):
			if err := p.parseLongOption(resolver, ctx, cursor); err != nil {
				return nil, p.decorate(err, path, args, position)
			}

		case strings.HasPrefix(token, p.cfg.ShortNamePrefix) && token != p.cfg.ShortNamePrefix:
			if p.isNegativeNumber(nil, token) && !resolver.IsOptionOrSubcommand(token) {
				ctx.ungrouped = append(ctx.ungrouped, posToken{value: token, index: position})
				cursor.Advance(1)
				break
			}
			if err := p.parseShortCluster(resolver, ctx, cursor); err != nil {
				return nil, p.decorate(err, path, args, position)
			}

		default:
			match := resolver.ResolveSubcommand(token)
			if match.State == MatchNotFound && p.cfg.AllowAbbreviatedSubcommands {
				match = resolver.ResolveSubcommandAbbreviated(token)
			}
			switch match.State {
			case MatchFound:
				cursor.Advance(1)
				sub = match.Command
			case MatchAmbiguous:
				return nil, p.decorate(NewParseError(ErrorTypeAmbiguousSubcommand,
					fmt.Sprintf("subcommand %q is ambiguous", token)).
					withName(token).
					withCandidates(match.Candidates), path, args, position)
			case MatchNotFound:
				if len(cmd.Subcommands) > 0 && len(cmd.Positionals) == 0 && len(ctx.ungrouped) == 0 {
					return nil, p.decorate(NewParseError(ErrorTypeUnknownSubcommand,
						fmt.Sprintf("unknown subcommand %q", token)).
						withName(token).
						withSuggestion(token, resolver.CommandNames()), path, args, position)
				}
				ctx.ungrouped = append(ctx.ungrouped, posToken{value: token, index: position})
				cursor.Advance(1)
			}
		}
	}

	grouped, err := groupPositionals(cmd, p.cfg, ctx.ungrouped)
	if err != nil {
		return nil, p.decorate(err, path, args, -1)
	}

	result := &Result{
		Args:        levelArgs,
		Command:     cmd.Name,
		Options:     ctx.options,
		Positionals: grouped,
		Trailing:    ctx.trailing,
	}

	if sub != nil {
		subResult, err := p.parseLevel(sub, append(path, sub.Name), cursor, args)
		if err != nil {
			return nil, err
		}
		result.Sub = subResult
	}
	return result, nil
}

// parseLongOption handles one long-option token: split off an inline
// value, resolve exactly, then by abbreviation, then — when inline values
// without the separator are allowed — by declared-name prefix.
func (p *Parser) parseLongOption(resolver *Resolver, ctx *levelContext, cursor *Cursor) error {
	token, err := cursor.Consume()
	if err != nil {
		return err
	}
	fragment := token[len(p.cfg.LongNamePrefix):]
	name, inline, hasInline := strings.Cut(fragment, p.cfg.OptionValueSeparator)

	match := resolver.ResolveOption(name)
	if match.State == MatchNotFound && p.cfg.AllowAbbreviatedOptions {
		match = resolver.ResolveOptionAbbreviated(name)
	}
	if match.State == MatchNotFound && p.cfg.AllowInlineValuesWithoutEquals && !hasInline {
		prefixMatch, suffix := resolver.ResolveOptionPrefix(name)
		if prefixMatch.State != MatchNotFound {
			match = prefixMatch
			inline, hasInline = suffix, true
		}
	}

	switch match.State {
	case MatchAmbiguous:
		return NewParseError(ErrorTypeAmbiguousOption,
			fmt.Sprintf("option %q is ambiguous", name)).
			withName(name).
			withCandidates(match.Candidates)
	case MatchNotFound:
		return NewParseError(ErrorTypeUnknownOption,
			fmt.Sprintf("unknown option %q", name)).
			withName(name).
			withSuggestion(name, resolver.OptionNames())
	}

	return p.collectOption(resolver, ctx, cursor, match.Option, match.Negated, inline, hasInline)
}

// parseShortCluster handles one short-option token holding one or more
// clustered single-character options. Every resolved option before the
// last must be a flag; once a value-accepting option is resolved, a
// following character that fails to resolve starts its inline value, and a
// following character that does resolve makes value ownership ambiguous —
// a specification defect, not an input error.
func (p *Parser) parseShortCluster(resolver *Resolver, ctx *levelContext, cursor *Cursor) error {
	token, err := cursor.Consume()
	if err != nil {
		return err
	}
	cluster := []rune(token[len(p.cfg.ShortNamePrefix):])

	var pending *Option
	var pendingNegated bool
	inline := ""
	hasInline := false

	for i := 0; i < len(cluster); i++ {
		name := string(cluster[i])
		match := resolver.ResolveOption(name)

		if match.State != MatchFound {
			if pending == nil {
				return NewParseError(ErrorTypeUnknownOption,
					fmt.Sprintf("unknown option %q in %q", name, token)).
					withName(name)
			}
			inline = string(cluster[i:])
			hasInline = true
			break
		}

		if pending != nil {
			if pending.AcceptsValues() {
				return newDefect(
					"options %q and %q clustered in %q with no value boundary between them",
					pending.Canonical(), match.Option.Canonical(), token)
			}
			// Pending flag gets stored before moving on.
			if err := p.collectOption(resolver, ctx, cursor, pending, pendingNegated, "", false); err != nil {
				return err
			}
		}
		pending = match.Option
		pendingNegated = match.Negated
	}

	if pending == nil {
		return NewParseError(ErrorTypeUnknownOption,
			fmt.Sprintf("empty option cluster %q", token)).withName(token)
	}
	return p.collectOption(resolver, ctx, cursor, pending, pendingNegated, inline, hasInline)
}

// collectOption gathers the values for one identified option occurrence
// and folds it into the level context.
func (p *Parser) collectOption(resolver *Resolver, ctx *levelContext, cursor *Cursor, opt *Option, negated bool, inline string, hasInline bool) error {
	if opt.Kind == KindFlag {
		if hasInline {
			return NewParseError(ErrorTypeOptionValueNotAllowed,
				fmt.Sprintf("option %q does not take a value (received %q)",
					opt.Canonical(), inline)).
				withName(opt.Canonical())
		}
		return ctx.store(opt, !negated)
	}

	scratch := pool.GetStringSlice()
	defer pool.PutStringSlice(scratch)
	run := *scratch
	if hasInline {
		run = append(run, inline)
	}

	max, bounded := opt.Arity.Max()
	for !bounded || len(run) < max {
		token, ok := cursor.Current()
		if !ok {
			break
		}
		if !opt.Arity.IsGreedy() {
			if token == p.cfg.TrailingArgumentsSeparator {
				break
			}
			if resolver.IsOptionOrSubcommand(token) && !p.isNegativeNumber(opt, token) {
				break
			}
		}
		cursor.Advance(1)
		run = append(run, token)
	}
	*scratch = run

	if len(run) < opt.Arity.Min() {
		return NewParseError(ErrorTypeOptionMissingValue,
			fmt.Sprintf("option %q requires at least %d value(s), got %d",
				opt.Canonical(), opt.Arity.Min(), len(run))).
			withName(opt.Canonical()).
			withCounts(opt.Arity.Min(), len(run))
	}

	switch opt.Kind {
	case KindScalar:
		var value any
		if len(run) == 1 {
			value = run[0]
		}
		return ctx.store(opt, value)
	case KindList:
		return ctx.store(opt, expandListValues(opt, p.cfg, run))
	case KindDict:
		occurrence, err := parseDictValues(opt, p.cfg, run)
		if err != nil {
			return err
		}
		return ctx.store(opt, occurrence)
	default:
		return newDefect("collect: unreachable option kind %q", opt.Kind)
	}
}

// isNegativeNumber reports whether the token should be consumed as a
// value despite looking like an option, honoring the per-option override.
// A nil opt checks the global configuration only.
func (p *Parser) isNegativeNumber(opt *Option, token string) bool {
	allowed := p.cfg.AllowNegativeNumbers
	if opt != nil && opt.AllowNegativeNumbers {
		allowed = true
	}
	return allowed && p.negNumber.MatchString(token)
}

// decorate attaches command-path, token-list, and position context to a
// ParseError once, preserving anything the error already carries. Defect
// errors pass through untouched.
func (p *Parser) decorate(err error, path, args []string, position int) error {
	parseErr, ok := err.(*ParseError)
	if !ok {
		return err
	}
	if parseErr.CommandPath == nil {
		parseErr.CommandPath = append([]string(nil), path...)
	}
	if parseErr.Args == nil {
		parseErr.Args = args
	}
	if parseErr.Position < 0 && position >= 0 {
		parseErr.Position = position
	}
	return parseErr
}
