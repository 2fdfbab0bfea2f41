package argspec

import (
	"fmt"
	"regexp"
)

// PositionalStrategy selects what happens to leftover positional tokens
// after every declared positional slot is satisfied.
type PositionalStrategy string

const (
	// PositionalIgnore drops leftover tokens silently.
	PositionalIgnore PositionalStrategy = "ignore"
	// PositionalCollect stores leftovers under UngroupedPositionalName.
	PositionalCollect PositionalStrategy = "collect"
	// PositionalError fails the parse on the first leftover token.
	PositionalError PositionalStrategy = "error"
)

// DefaultNegativeNumberPattern matches tokens like -5, -0.25.
const DefaultNegativeNumberPattern = `^-[0-9]+(\.[0-9]+)?$`

// Config is the flat record of switches read by every component. It is
// validated once at parser construction and treated as read-only for the
// lifetime of a parse, so one Config may serve any number of concurrent
// parsers.
type Config struct {
	// Prefixes and separators.
	LongNamePrefix             string `json:"long_name_prefix" toml:"long_name_prefix" yaml:"long_name_prefix"`
	ShortNamePrefix            string `json:"short_name_prefix" toml:"short_name_prefix" yaml:"short_name_prefix"`
	TrailingArgumentsSeparator string `json:"trailing_arguments_separator" toml:"trailing_arguments_separator" yaml:"trailing_arguments_separator"`
	OptionValueSeparator       string `json:"option_value_separator" toml:"option_value_separator" yaml:"option_value_separator"`
	KeyValueSeparator          string `json:"key_value_separator" toml:"key_value_separator" yaml:"key_value_separator"`
	NestingSeparator           string `json:"nesting_separator" toml:"nesting_separator" yaml:"nesting_separator"`
	ValueItemSeparator         string `json:"value_item_separator" toml:"value_item_separator" yaml:"value_item_separator"`
	ValueEscapeCharacter       string `json:"value_escape_character" toml:"value_escape_character" yaml:"value_escape_character"`
	DictEscapeCharacter        string `json:"dict_escape_character" toml:"dict_escape_character" yaml:"dict_escape_character"`

	// Name matching policy.
	AllowAbbreviatedOptions     bool `json:"allow_abbreviated_options" toml:"allow_abbreviated_options" yaml:"allow_abbreviated_options"`
	AllowAbbreviatedSubcommands bool `json:"allow_abbreviated_subcommands" toml:"allow_abbreviated_subcommands" yaml:"allow_abbreviated_subcommands"`
	MinimumAbbreviationLength   int  `json:"minimum_abbreviation_length" toml:"minimum_abbreviation_length" yaml:"minimum_abbreviation_length"`
	CaseSensitiveOptions        bool `json:"case_sensitive_options" toml:"case_sensitive_options" yaml:"case_sensitive_options"`
	CaseSensitiveCommands       bool `json:"case_sensitive_commands" toml:"case_sensitive_commands" yaml:"case_sensitive_commands"`
	ConvertUnderscores          bool `json:"convert_underscores" toml:"convert_underscores" yaml:"convert_underscores"`

	// Grammar switches.
	AllowNegativeNumbers           bool   `json:"allow_negative_numbers" toml:"allow_negative_numbers" yaml:"allow_negative_numbers"`
	NegativeNumberPattern          string `json:"negative_number_pattern" toml:"negative_number_pattern" yaml:"negative_number_pattern"`
	StrictPosixOptions             bool   `json:"strict_posix_options" toml:"strict_posix_options" yaml:"strict_posix_options"`
	AllowInlineValuesWithoutEquals bool   `json:"allow_inline_values_without_equals" toml:"allow_inline_values_without_equals" yaml:"allow_inline_values_without_equals"`
	AllowNestedDictKeys            bool   `json:"allow_nested_dict_keys" toml:"allow_nested_dict_keys" yaml:"allow_nested_dict_keys"`

	// Leftover positional handling.
	UngroupedPositionalStrategy PositionalStrategy `json:"ungrouped_positional_strategy" toml:"ungrouped_positional_strategy" yaml:"ungrouped_positional_strategy"`
	UngroupedPositionalName     string             `json:"ungrouped_positional_name" toml:"ungrouped_positional_name" yaml:"ungrouped_positional_name"`

	// Argument-file expansion (consumed by ExpandArgumentFiles; the engine
	// itself only ever sees the already-expanded token list).
	ArgumentFilePrefix     string   `json:"argument_file_prefix" toml:"argument_file_prefix" yaml:"argument_file_prefix"`
	ArgumentFileComment    string   `json:"argument_file_comment" toml:"argument_file_comment" yaml:"argument_file_comment"`
	MaxArgumentFileDepth   int      `json:"max_argument_file_depth" toml:"max_argument_file_depth" yaml:"max_argument_file_depth"`
	ArgumentFileAllowPaths []string `json:"argument_file_allow_paths" toml:"argument_file_allow_paths" yaml:"argument_file_allow_paths"`
	ArgumentFileDenyPaths  []string `json:"argument_file_deny_paths" toml:"argument_file_deny_paths" yaml:"argument_file_deny_paths"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LongNamePrefix:             "--",
		ShortNamePrefix:            "-",
		TrailingArgumentsSeparator: "--",
		OptionValueSeparator:       "=",
		KeyValueSeparator:          "=",
		NestingSeparator:           ".",
		ValueItemSeparator:         ",",
		ValueEscapeCharacter:       `\`,
		DictEscapeCharacter:        `\`,

		AllowAbbreviatedOptions:     false,
		AllowAbbreviatedSubcommands: false,
		MinimumAbbreviationLength:   3,
		CaseSensitiveOptions:        true,
		CaseSensitiveCommands:       true,
		ConvertUnderscores:          true,

		AllowNegativeNumbers:           true,
		NegativeNumberPattern:          DefaultNegativeNumberPattern,
		StrictPosixOptions:             false,
		AllowInlineValuesWithoutEquals: false,
		AllowNestedDictKeys:            false,

		UngroupedPositionalStrategy: PositionalIgnore,
		UngroupedPositionalName:     "extra",

		ArgumentFilePrefix:   "@",
		ArgumentFileComment:  "#",
		MaxArgumentFileDepth: 4,
	}
}

// Validate enforces the configuration invariants. It is called once by
// NewParser (and by ExpandArgumentFiles) before any token is examined.
func (c *Config) Validate() error {
	if c.LongNamePrefix == "" || c.ShortNamePrefix == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"long and short option prefixes must not be empty")
	}
	if c.LongNamePrefix == c.ShortNamePrefix {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("long and short option prefixes must differ, both are %q", c.LongNamePrefix))
	}
	if c.TrailingArgumentsSeparator == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"trailing arguments separator must not be empty")
	}
	if c.OptionValueSeparator == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"option value separator must not be empty")
	}
	if c.KeyValueSeparator == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"key-value separator must not be empty")
	}
	if c.KeyValueSeparator == c.NestingSeparator {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("key-value separator %q must differ from the nesting separator",
				c.KeyValueSeparator))
	}
	if c.KeyValueSeparator == c.ValueItemSeparator {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("key-value separator %q must differ from the value item separator",
				c.KeyValueSeparator))
	}
	if len(c.ValueEscapeCharacter) > 1 || len(c.DictEscapeCharacter) > 1 {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"escape characters must be single characters")
	}
	if c.MinimumAbbreviationLength < 1 {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("minimum abbreviation length must be >= 1, got %d",
				c.MinimumAbbreviationLength))
	}
	if c.MaxArgumentFileDepth < 1 {
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("max argument file depth must be >= 1, got %d", c.MaxArgumentFileDepth))
	}
	switch c.UngroupedPositionalStrategy {
	case PositionalIgnore, PositionalCollect, PositionalError:
	default:
		return NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("unknown ungrouped positional strategy %q", c.UngroupedPositionalStrategy))
	}
	if c.UngroupedPositionalStrategy == PositionalCollect && c.UngroupedPositionalName == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"ungrouped positional name must not be empty under the collect strategy")
	}
	if c.AllowNegativeNumbers {
		if _, err := regexp.Compile(c.NegativeNumberPattern); err != nil {
			return NewParseError(ErrorTypeInvalidConfiguration,
				fmt.Sprintf("negative number pattern does not compile: %v", err))
		}
	}
	if c.ArgumentFilePrefix == "" {
		return NewParseError(ErrorTypeInvalidConfiguration,
			"argument file prefix must not be empty")
	}
	return nil
}

// itemSeparator returns the effective item separator for a list option.
func (c *Config) itemSeparator(opt *Option) string {
	if opt.ItemSeparator != "" {
		return opt.ItemSeparator
	}
	return c.ValueItemSeparator
}

// valueEscape returns the effective escape character for a list option.
func (c *Config) valueEscape(opt *Option) string {
	if opt.EscapeCharacter != "" {
		return opt.EscapeCharacter
	}
	return c.ValueEscapeCharacter
}

// kvSeparator returns the effective key-value separator for a dict option.
func (c *Config) kvSeparator(opt *Option) string {
	if opt.KeyValueSeparator != "" {
		return opt.KeyValueSeparator
	}
	return c.KeyValueSeparator
}
