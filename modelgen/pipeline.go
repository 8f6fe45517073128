package modelgen

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/dedup"
	"github.com/koxudaxi/go-datamodel-codegen/diag"
	"github.com/koxudaxi/go-datamodel-codegen/emit"
	"github.com/koxudaxi/go-datamodel-codegen/input"
	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/naming"
	"github.com/koxudaxi/go-datamodel-codegen/partition"
	"github.com/koxudaxi/go-datamodel-codegen/rawschema"
	"github.com/koxudaxi/go-datamodel-codegen/resolve"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// Pipeline wires every core component (schema -> resolve -> model ->
// naming -> dedup -> order -> partition) into the single [Pipeline.Generate]
// call spec §1 describes as the generator's pure core: (schema, config) ->
// artifacts, with all I/O (loading source bytes, printing target-language
// source) left to the caller.
type Pipeline struct {
	Config *Config
}

// NewPipeline creates a Pipeline from an already-validated cfg, equivalent
// to cfg.NewPipeline() without the range check (used by tests that
// construct a [Config] literal directly).
func NewPipeline(cfg *Config) *Pipeline {
	return &Pipeline{Config: cfg}
}

// Result is one Pipeline.Generate run's output: the finalized module
// graph, ready for an external [emit.Printer], plus every diagnostic
// raised along the way.
type Result struct {
	Registry    emit.Registry
	Diagnostics []diag.Diagnostic
}

// Generate runs sources through the full core pipeline and returns the
// finalized, partitioned model graph. It never touches disk or network:
// sources must already carry their bytes (spec §1's I/O boundary).
func (p *Pipeline) Generate(ctx context.Context, sources []Source) (*Result, error) {
	cfg := p.Config

	table := schema.NewTable(nil, 0)
	registry := model.NewRegistry()
	resolver := resolve.NewResolver(table, cfg.AllOfMergeMode)
	builder := model.NewBuilder(table, resolver, registry, true)
	diags := diag.NewChannel()
	defer diags.Close()

	parsers := input.NewRegistry()

	inferCfg := cfg.Infer
	if inferCfg == nil {
		inferCfg = rawschema.NewConfig()
	}

	gen := inferCfg.NewGenerator()
	parsers.Register(input.KindJSON, input.NewExampleParser(gen))
	parsers.Register(input.KindYAML, input.NewExampleParser(gen))
	parsers.Register(input.KindDict, input.NewExampleParser(gen))
	parsers.Register(input.KindCSV, input.NewCSVParser(gen))

	var result Result

	for _, src := range sources {
		kind := src.Kind
		if kind == "" || kind == input.KindAuto {
			kind = input.Detect(src.URI, src.Content)
		}

		doc, err := parsers.Parse(ctx, table, src.URI, src.Content, kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.URI, err)
		}

		entries, err := discoverTopLevel(table, src.URI, doc, kind, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.URI, err)
		}

		docModule := sanitizeDocModule(src.URI)

		for _, entry := range entries {
			initialModule := docModule
			if cfg.SplitMode == partition.SplitSingle {
				initialModule = ""
			}

			if _, err := builder.BuildByID(ctx, initialModule, entry.id); err != nil {
				return nil, fmt.Errorf("%s#%s: %w", src.URI, entry.name, err)
			}
		}
	}

	if err := model.CheckMultipleInheritance(registry, cfg.OutputModelType.AllowsMultipleInheritance()); err != nil {
		return nil, err
	}

	if cfg.CollapseRootModels {
		model.CollapseRootModels(registry, cfg.CollapseNameStrategy)
	}

	if cfg.ReadOnlyWriteOnlyMode != model.ReadOnlyWriteOnlyNone {
		variants := model.SplitReadOnlyWriteOnly(registry, cfg.ReadOnlyWriteOnlyMode)

		if cfg.ReadOnlyWriteOnlyMode == model.ReadOnlyWriteOnlyRequestResponse {
			rewrite := make(map[datatype.ModelId]datatype.ModelId, len(variants))
			for id, v := range variants {
				rewrite[id] = v[model.VariantResponse]
			}

			model.ApplyRewrite(registry, rewrite)
		}
	}

	naming.Resolve(registry, cfg.NamingStrategy)

	renames := naming.SanitizeFields(registry, cfg.FieldCollisionStrategy)
	applyTypeRenames(registry, renames)

	dedup.Run(registry, cfg.ReuseScope, cfg.SharedModuleName)

	ordered := model.Order(registry)

	partition.Assign(registry, cfg.SplitMode, nil)

	modules, err := partition.BuildModules(ordered, string(cfg.OutputModelType), cfg.AllExportsScope, cfg.AllExportsCollision, diags)
	if err != nil {
		return nil, err
	}

	result.Registry = emit.Registry{Modules: modules, EntityRegistry: registry}
	result.Diagnostics = diags.All()

	return &result, nil
}

// applyTypeRenames performs the type-side rename [naming.RenameType]
// defers to the caller: for each request, the sibling model whose
// sanitized name collided with a field's wire name is renamed to a fresh,
// still-unique name -- no [model.ApplyRewrite] is needed, since only the
// model's display Name changes, not its stable [datatype.ModelId].
func applyTypeRenames(registry *model.Registry, renames []naming.TypeRenameRequest) {
	if len(renames) == 0 {
		return
	}

	taken := make(map[string]bool)
	for _, dm := range registry.All() {
		taken[dm.Name] = true
	}

	for _, req := range renames {
		colliding := naming.SanitizeIdentifier(req.CollidingName)

		for _, dm := range registry.All() {
			if dm.Name != colliding {
				continue
			}

			newName := colliding
			for n := 2; taken[newName]; n++ {
				newName = fmt.Sprintf("%sModel%d", colliding, n)
			}

			delete(taken, dm.Name)
			dm.Name = newName
			taken[newName] = true

			break
		}
	}
}

// sanitizeDocModule derives a module-path hint from a source URI's base
// name, the default module-grouping key spec §4.8's "one module per
// source schema document" rule uses.
func sanitizeDocModule(uri string) string {
	base := path.Base(uri)
	base = strings.TrimSuffix(base, path.Ext(base))

	if base == "" || base == "." || base == "/" {
		return partition.DefaultModuleName
	}

	return base
}
