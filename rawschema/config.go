package rawschema

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for raw-schema inference configuration,
// allowing callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Title       string
	Description string
	ID          string
	Strict      string
}

// Config holds CLI flag values for raw-schema inference configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewGenerator] to create a [Generator].
type Config struct {
	Flags Flags

	Title       string
	Description string
	ID          string
	Strict      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Title:       "infer-title",
			Description: "infer-description",
			ID:          "infer-id",
			Strict:      "infer-strict",
		},
	}
}

// RegisterFlags adds raw-schema inference flags to the given
// [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Title, c.Flags.Title, "", "title for the inferred root schema")
	flags.StringVar(&c.Description, c.Flags.Description, "", "description for the inferred root schema")
	flags.StringVar(&c.ID, c.Flags.ID, "", "$id for the inferred root schema")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false, "set additionalProperties: false on inferred objects")
}

// RegisterCompletions registers shell completions for inference flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Title, c.Flags.Description, c.Flags.ID} {
		if err := cmd.RegisterFlagCompletionFunc(flag, noFileComp); err != nil {
			return err
		}
	}

	return nil
}

// NewGenerator creates a [Generator] using this [Config].
func (c *Config) NewGenerator() *Generator {
	var opts []Option

	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}

	if c.Description != "" {
		opts = append(opts, WithDescription(c.Description))
	}

	if c.ID != "" {
		opts = append(opts, WithID(c.ID))
	}

	if c.Strict {
		opts = append(opts, WithStrict(true))
	}

	return NewGenerator(opts...)
}
