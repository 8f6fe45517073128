package modelgen

import (
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// Report is a JSON-marshalable view of a [Result]: the core's finalized,
// partitioned model graph has no `Printer` of its own (spec §1 leaves
// target-language formatting external), so this is what the CLI emits --
// a structural dump fit for diffing or feeding a downstream printer.
type Report struct {
	Modules     []ReportModule `json:"modules"`
	Diagnostics []ReportDiag   `json:"diagnostics,omitempty"`
}

// ReportModule mirrors [partition.Module] in JSON-friendly form.
type ReportModule struct {
	Path    string        `json:"path"`
	Exports []string      `json:"exports"`
	Imports []string      `json:"imports"`
	Models  []ReportModel `json:"models"`
}

// ReportModel mirrors one [model.DataModel].
type ReportModel struct {
	Name      string        `json:"name"`
	Kind      model.Kind    `json:"kind"`
	Docstring string        `json:"docstring,omitempty"`
	Bases     []string      `json:"bases,omitempty"`
	Fields    []ReportField `json:"fields,omitempty"`
	Enum      []string      `json:"enum,omitempty"`
	Alias     string        `json:"alias,omitempty"`
}

// ReportField mirrors one [model.Field].
type ReportField struct {
	Name     string `json:"name"`
	WireName string `json:"wire_name,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// ReportDiag mirrors one [diag.Diagnostic].
type ReportDiag struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

// BuildReport flattens res into a [Report], resolving every [datatype.ModelId]
// through res.Registry.EntityRegistry so the output is self-contained.
func BuildReport(res *Result) Report {
	reg := res.Registry.EntityRegistry

	report := Report{}

	for _, mod := range res.Registry.Modules {
		rm := ReportModule{Path: mod.Path, Exports: mod.Exports}

		for _, imp := range mod.Imports {
			rm.Imports = append(rm.Imports, imp.Path)
		}

		for _, dm := range mod.Models {
			rm.Models = append(rm.Models, buildReportModel(dm, reg))
		}

		report.Modules = append(report.Modules, rm)
	}

	for _, d := range res.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, ReportDiag{
			Severity: string(d.Severity), Code: string(d.Code), Message: d.Message, Path: d.Path,
		})
	}

	return report
}

func buildReportModel(dm *model.DataModel, reg *model.Registry) ReportModel {
	rm := ReportModel{Name: dm.Name, Kind: dm.Kind, Docstring: dm.Docstring}

	for _, base := range dm.Bases {
		rm.Bases = append(rm.Bases, modelName(base, reg))
	}

	for _, f := range dm.Fields {
		rm.Fields = append(rm.Fields, ReportField{
			Name: f.Name, WireName: f.WireName, Type: describeType(f.Type, reg), Required: f.Required,
		})
	}

	if dm.Enum != nil {
		for _, m := range dm.Enum.Members {
			rm.Enum = append(rm.Enum, m.Name)
		}
	}

	if dm.Alias != nil {
		rm.Alias = describeType(dm.Alias, reg)
	}

	return rm
}

func modelName(id datatype.ModelId, reg *model.Registry) string {
	if dm := reg.Get(id); dm != nil {
		return dm.Name
	}

	return fmt.Sprintf("#%d", id)
}

// describeType renders dt as a compact, Python-flavored type expression
// for [Report] output; it is a debugging aid, not an emission decision --
// a real [emit.Printer] picks its own target-language spelling.
func describeType(dt datatype.DataType, reg *model.Registry) string {
	switch v := dt.(type) {
	case datatype.Primitive:
		return string(v.Kind)
	case datatype.Literal:
		return fmt.Sprintf("Literal[%v]", v.Value)
	case datatype.Enum:
		return "Enum"
	case datatype.Array:
		return fmt.Sprintf("list[%s]", describeType(v.Items, reg))
	case datatype.Mapping:
		return fmt.Sprintf("dict[%s, %s]", describeType(v.Key, reg), describeType(v.Value, reg))
	case datatype.Union:
		s := "Union["
		for i, variant := range v.Variants {
			if i > 0 {
				s += ", "
			}

			s += describeType(variant, reg)
		}

		return s + "]"
	case datatype.Intersection:
		s := "Intersection["
		for i, base := range v.Bases {
			if i > 0 {
				s += ", "
			}

			s += modelName(base, reg)
		}

		return s + "]"
	case datatype.ModelRef:
		return modelName(v.ID, reg)
	case datatype.RootWrapper:
		return describeType(v.Inner, reg)
	case datatype.Optional:
		return fmt.Sprintf("Optional[%s]", describeType(v.Inner, reg))
	case datatype.ForwardRef:
		return v.Name
	default:
		return "Any"
	}
}
