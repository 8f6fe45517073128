package modelgen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/dedup"
	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/naming"
	"github.com/koxudaxi/go-datamodel-codegen/partition"
	"github.com/koxudaxi/go-datamodel-codegen/rawschema"
)

// Flags holds CLI flag names for pipeline configuration, allowing callers
// to customize flag names while keeping sensible defaults (grounded on
// [magicschema.Flags]'s same role).
type Flags struct {
	Output                 string
	SplitMode              string
	OutputModelType        string
	TargetLanguageVersion  string
	ReuseScope             string
	SharedModuleName       string
	NamingStrategy         string
	FieldCollisionStrategy string
	CollapseRootModels     string
	CollapseNameStrategy   string
	AllOfMergeMode         string
	ReadOnlyWriteOnlyMode  string
	AllExportsScope        string
	AllExportsCollision    string
	OpenAPIScopes          string
	GraphQLScopes          string
	StrictNullable         string
	UseUnionOperator       string
	Extras                 string
	CustomFileHeader       string
}

// Config holds CLI flag values for pipeline configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewPipeline] to create a [Pipeline].
type Config struct {
	Flags Flags

	Output string

	// Infer configures structural inference for the `json`/`yaml`/`dict`/
	// `csv` input kinds, which carry no explicit schema.
	Infer *rawschema.Config

	SplitMode              partition.SplitMode
	OutputModelType        OutputModelType
	TargetLanguageVersion  int
	ReuseScope             dedup.ReuseScope
	SharedModuleName       string
	NamingStrategy         naming.Strategy
	FieldCollisionStrategy naming.FieldTypeCollisionStrategy
	CollapseRootModels     bool
	CollapseNameStrategy   model.CollapseRootModelsNameStrategy
	AllOfMergeMode         datatype.IntersectionMergeMode
	ReadOnlyWriteOnlyMode  model.ReadOnlyWriteOnlyMode
	AllExportsScope        partition.AllExportsScope
	AllExportsCollision    partition.AllExportsCollisionStrategy
	OpenAPIScopes          []OpenAPIScope
	GraphQLScopes          []GraphQLScope
	StrictNullable         bool
	UseUnionOperator       bool
	Extras                 string
	CustomFileHeader       string

	openAPIScopesRaw string
	graphQLScopesRaw string
}

// NewConfig returns a new [Config] with default flag names. Option values
// stay at their zero values until [Config.RegisterFlags] registers the
// flags, which assigns each option its default.
func NewConfig() *Config {
	f := Flags{
		Output:                 "output",
		SplitMode:              "split-mode",
		OutputModelType:        "output-model-type",
		TargetLanguageVersion:  "target-language-version",
		ReuseScope:             "reuse-scope",
		SharedModuleName:       "shared-module-name",
		NamingStrategy:         "naming-strategy",
		FieldCollisionStrategy: "field-type-collision-strategy",
		CollapseRootModels:     "collapse-root-models",
		CollapseNameStrategy:   "collapse-name-strategy",
		AllOfMergeMode:         "all-of-merge-mode",
		ReadOnlyWriteOnlyMode:  "read-only-write-only-model-type",
		AllExportsScope:        "all-exports-scope",
		AllExportsCollision:    "all-exports-collision-strategy",
		OpenAPIScopes:          "openapi-scopes",
		GraphQLScopes:          "graphql-scopes",
		StrictNullable:         "strict-nullable",
		UseUnionOperator:       "use-union-operator",
		Extras:                 "extras",
		CustomFileHeader:       "custom-file-header",
	}

	return &Config{Flags: f, Infer: rawschema.NewConfig()}
}

// RegisterFlags adds pipeline flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file for the JSON report (- for stdout)")

	c.Infer.RegisterFlags(flags)

	flags.StringVar((*string)(&c.SplitMode), c.Flags.SplitMode, string(partition.SplitDefault),
		"module grouping: one per source document, or one per model")
	flags.StringVar((*string)(&c.OutputModelType), c.Flags.OutputModelType, string(PydanticV2BaseModel),
		"target model family")
	flags.IntVar(&c.TargetLanguageVersion, c.Flags.TargetLanguageVersion, 12,
		"minimum target language version")
	flags.StringVar((*string)(&c.ReuseScope), c.Flags.ReuseScope, string(dedup.ScopeModule),
		"structural reuse scope for duplicate models")
	flags.StringVar(&c.SharedModuleName, c.Flags.SharedModuleName, dedup.DefaultSharedModuleName,
		"module name tree-scope dedup survivors move to")
	flags.StringVar((*string)(&c.NamingStrategy), c.Flags.NamingStrategy, string(naming.Numbered),
		"provisional-name collision resolution strategy")
	flags.StringVar((*string)(&c.FieldCollisionStrategy), c.Flags.FieldCollisionStrategy, string(naming.RenameField),
		"field-vs-sibling-type name collision resolution strategy")
	flags.BoolVar(&c.CollapseRootModels, c.Flags.CollapseRootModels, true,
		"collapse root-wrapper models that just alias a single ref")
	flags.StringVar((*string)(&c.CollapseNameStrategy), c.Flags.CollapseNameStrategy, string(model.CollapseChild),
		"which side's name survives a root-wrapper collapse")
	flags.StringVar((*string)(&c.AllOfMergeMode), c.Flags.AllOfMergeMode, string(datatype.MergeConstraints),
		"allOf/intersection merge mode")
	flags.StringVar((*string)(&c.ReadOnlyWriteOnlyMode), c.Flags.ReadOnlyWriteOnlyMode, string(model.ReadOnlyWriteOnlyNone),
		"readOnly/writeOnly model split mode")
	flags.StringVar((*string)(&c.AllExportsScope), c.Flags.AllExportsScope, string(partition.ExportsChildren),
		"module export-list scope")
	flags.StringVar((*string)(&c.AllExportsCollision), c.Flags.AllExportsCollision, string(partition.ExportsMinimalPrefix),
		"module export-name collision resolution strategy")
	flags.StringVar(&c.openAPIScopesRaw, c.Flags.OpenAPIScopes, string(OpenAPIScopeSchemas),
		"comma-separated OpenAPI document sections to discover top-level schemas from")
	flags.StringVar(&c.graphQLScopesRaw, c.Flags.GraphQLScopes, string(GraphQLScopeSchema),
		"comma-separated GraphQL SDL sections to discover top-level schemas from")
	flags.BoolVar(&c.StrictNullable, c.Flags.StrictNullable, false,
		"require explicit `type: null` rather than treating a bare `nullable: true` as sufficient")
	flags.BoolVar(&c.UseUnionOperator, c.Flags.UseUnionOperator, true,
		"prefer the `X | Y` union spelling over `Union[X, Y]`")
	flags.StringVar(&c.Extras, c.Flags.Extras, "",
		"comma-separated vendor extension keys to carry through as field annotations")
	flags.StringVar(&c.CustomFileHeader, c.Flags.CustomFileHeader, "",
		"literal text prepended to every emitted module")
}

// RegisterCompletions registers shell completions for the enum-valued
// pipeline flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	completions := map[string][]string{
		c.Flags.SplitMode: {string(partition.SplitDefault), string(partition.SplitSingle)},
		c.Flags.OutputModelType: {
			string(PydanticBaseModel), string(PydanticV2BaseModel), string(PydanticV2Dataclass),
			string(DataclassesDataclass), string(TypingTypedDict), string(MsgspecStruct),
		},
		c.Flags.ReuseScope:            {string(dedup.ScopeModule), string(dedup.ScopeTree)},
		c.Flags.NamingStrategy:        {string(naming.Numbered), string(naming.ParentPrefixed), string(naming.FullPath), string(naming.PrimaryFirst)},
		c.Flags.FieldCollisionStrategy: {string(naming.RenameField), string(naming.RenameType)},
		c.Flags.CollapseNameStrategy:  {string(model.CollapseChild), string(model.CollapseParent)},
		c.Flags.AllOfMergeMode:        {string(datatype.MergeConstraints), string(datatype.MergeAll), string(datatype.MergeNone)},
		c.Flags.ReadOnlyWriteOnlyMode: {string(model.ReadOnlyWriteOnlyNone), string(model.ReadOnlyWriteOnlyRequestResponse), string(model.ReadOnlyWriteOnlyAll)},
		c.Flags.AllExportsScope:       {string(partition.ExportsChildren), string(partition.ExportsRecursive)},
		c.Flags.AllExportsCollision:   {string(partition.ExportsError), string(partition.ExportsMinimalPrefix), string(partition.ExportsFullPrefix)},
	}

	names := make([]string, 0, len(completions))
	for name := range completions {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		values := completions[name]
		err := cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", name, err)
		}
	}

	return c.Infer.RegisterCompletions(cmd)
}

// NewPipeline validates c and creates a [Pipeline] from it.
func (c *Config) NewPipeline() (*Pipeline, error) {
	if c.TargetLanguageVersion < MinTargetVersion || c.TargetLanguageVersion > MaxTargetVersion {
		return nil, fmt.Errorf("%w: target language version %d out of [%d,%d]",
			ErrInvalidConfig, c.TargetLanguageVersion, MinTargetVersion, MaxTargetVersion)
	}

	c.OpenAPIScopes = parseOpenAPIScopes(c.openAPIScopesRaw)
	c.GraphQLScopes = parseGraphQLScopes(c.graphQLScopesRaw)

	return &Pipeline{Config: c}, nil
}

func parseOpenAPIScopes(raw string) []OpenAPIScope {
	var out []OpenAPIScope

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, OpenAPIScope(p))
		}
	}

	return out
}

func parseGraphQLScopes(raw string) []GraphQLScope {
	var out []GraphQLScope

	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, GraphQLScope(p))
		}
	}

	return out
}
