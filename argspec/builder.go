package argspec

// New creates a root command builder. Builders are a convenience layer:
// the Command/Option/Positional structs can also be filled in directly.
func New(name string) *CommandBuilder {
	return &CommandBuilder{
		command: &Command{Name: name},
	}
}

// CommandBuilder provides a fluent API for assembling a command
// specification tree.
type CommandBuilder struct {
	command *Command
	parent  *CommandBuilder // nil at the root
}

// Alias adds aliases for the command.
func (b *CommandBuilder) Alias(aliases ...string) *CommandBuilder {
	b.command.Aliases = append(b.command.Aliases, aliases...)
	return b
}

// Flag adds a flag option. The first name is canonical.
func (b *CommandBuilder) Flag(names ...string) *OptionBuilder {
	return b.addOption(&Option{Names: names, Kind: KindFlag})
}

// Scalar adds a scalar option taking exactly one value.
func (b *CommandBuilder) Scalar(names ...string) *OptionBuilder {
	return b.addOption(&Option{Names: names, Kind: KindScalar, Arity: Exactly(1)})
}

// List adds a list option taking one or more values, stopping at the next
// recognized option or subcommand.
func (b *CommandBuilder) List(names ...string) *OptionBuilder {
	return b.addOption(&Option{Names: names, Kind: KindList, Arity: AtLeast(1)})
}

// Dict adds a dict option taking one key=value token per occurrence.
func (b *CommandBuilder) Dict(names ...string) *OptionBuilder {
	return b.addOption(&Option{Names: names, Kind: KindDict, Arity: Exactly(1)})
}

func (b *CommandBuilder) addOption(opt *Option) *OptionBuilder {
	b.command.Options = append(b.command.Options, opt)
	return &OptionBuilder{opt: opt, parent: b}
}

// Positional adds a positional slot with the given arity.
func (b *CommandBuilder) Positional(name string, arity Arity) *CommandBuilder {
	b.command.Positionals = append(b.command.Positionals, &Positional{Name: name, Arity: arity})
	return b
}

// Command adds a subcommand and returns its builder.
func (b *CommandBuilder) Command(name string) *CommandBuilder {
	sub := &Command{Name: name}
	b.command.Subcommands = append(b.command.Subcommands, sub)
	return &CommandBuilder{command: sub, parent: b}
}

// Parent returns the enclosing command builder, or the receiver at the
// root.
func (b *CommandBuilder) Parent() *CommandBuilder {
	if b.parent == nil {
		return b
	}
	return b.parent
}

// Build validates the whole tree (from the root, regardless of which
// builder it is called on) and returns the root command.
func (b *CommandBuilder) Build() (*Command, error) {
	root := b
	for root.parent != nil {
		root = root.parent
	}
	if err := root.command.Validate(); err != nil {
		return nil, err
	}
	return root.command, nil
}

// MustBuild is Build for specifications known to be well-formed; it
// panics on validation errors.
func (b *CommandBuilder) MustBuild() *Command {
	cmd, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cmd
}

// OptionBuilder provides a fluent API for configuring one option.
type OptionBuilder struct {
	opt    *Option
	parent *CommandBuilder
}

// Arity sets the option's arity.
func (ob *OptionBuilder) Arity(arity Arity) *OptionBuilder {
	ob.opt.Arity = arity
	return ob
}

// Mode sets the accumulation mode.
func (ob *OptionBuilder) Mode(mode AccumulationMode) *OptionBuilder {
	ob.opt.Mode = mode
	return ob
}

// Negatives adds negative names that invert the flag's polarity.
func (ob *OptionBuilder) Negatives(names ...string) *OptionBuilder {
	ob.opt.NegativeNames = append(ob.opt.NegativeNames, names...)
	return ob
}

// NegativePrefix derives a negative name from every long name of the flag
// ("no-" turns "color" into "no-color").
func (ob *OptionBuilder) NegativePrefix(prefix string) *OptionBuilder {
	ob.opt.NegativePrefix = prefix
	return ob
}

// SplitItems enables item-separator splitting for a list option. An empty
// separator keeps the configured default.
func (ob *OptionBuilder) SplitItems(separator string) *OptionBuilder {
	ob.opt.SplitItems = true
	ob.opt.ItemSeparator = separator
	return ob
}

// Escape sets the escape character honored during item splitting.
func (ob *OptionBuilder) Escape(escape string) *OptionBuilder {
	ob.opt.EscapeCharacter = escape
	return ob
}

// KeySeparator overrides the key-value separator for a dict option.
func (ob *OptionBuilder) KeySeparator(separator string) *OptionBuilder {
	ob.opt.KeyValueSeparator = separator
	return ob
}

// MergeStrategy sets the dict merge strategy used under ModeMerge.
func (ob *OptionBuilder) MergeStrategy(strategy MergeStrategy) *OptionBuilder {
	ob.opt.Merge = strategy
	return ob
}

// AllowNegativeNumbers lets this option consume negative-number tokens as
// values even when the global configuration forbids it.
func (ob *OptionBuilder) AllowNegativeNumbers() *OptionBuilder {
	ob.opt.AllowNegativeNumbers = true
	return ob
}

// Back returns to the owning command builder for continued chaining.
func (ob *OptionBuilder) Back() *CommandBuilder {
	return ob.parent
}
