package argspec

import "fmt"

// Positional is a positional argument specification: a name and the arity
// describing how many leftover tokens the slot may absorb.
type Positional struct {
	Name  string
	Arity Arity
}

// Validate checks the positional's name and arity.
func (p *Positional) Validate() error {
	if err := validateName(p.Name, "positional"); err != nil {
		return err
	}
	if err := p.Arity.Validate(); err != nil {
		return err
	}
	return nil
}

// Command is a command specification: its options, positionals, and
// subcommands. The tree is owned by the caller, walked root-to-leaf by the
// engine, and never mutated after construction, so it may be shared across
// concurrent parses.
type Command struct {
	Name        string
	Aliases     []string
	Options     []*Option
	Positionals []*Positional
	Subcommands []*Command
}

// Subcommand returns the direct subcommand with the given declared name,
// or nil. Lookup is by declared name only; alias and abbreviation matching
// belong to the resolver.
func (c *Command) Subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// Option returns the declared option with the given canonical or alternate
// name, or nil.
func (c *Command) Option(name string) *Option {
	for _, opt := range c.Options {
		for _, n := range opt.Names {
			if n == name {
				return opt
			}
		}
	}
	return nil
}

// Validate checks the command subtree: names, option and positional
// specifications, and the single-unbounded-positional rule. Name-collision
// checks under the configured normalization happen in NewParser, where the
// Configuration is known.
func (c *Command) Validate() error {
	if err := validateName(c.Name, "command"); err != nil {
		return err
	}
	for _, alias := range c.Aliases {
		if err := validateName(alias, "command alias"); err != nil {
			return err
		}
	}

	for _, opt := range c.Options {
		if err := opt.Validate(); err != nil {
			return err
		}
	}

	unbounded := 0
	for _, pos := range c.Positionals {
		if err := pos.Validate(); err != nil {
			return err
		}
		if pos.Arity.IsZero() {
			return NewParseError(ErrorTypeInvalidArity,
				fmt.Sprintf("positional %q of command %q must accept at least one value",
					pos.Name, c.Name))
		}
		if _, bounded := pos.Arity.Max(); !bounded {
			unbounded++
		}
	}
	if unbounded > 1 {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("command %q declares %d unbounded positionals; at most one is allowed",
				c.Name, unbounded))
	}

	for _, sub := range c.Subcommands {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	return nil
}
