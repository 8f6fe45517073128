package modelgen

// OutputModelType selects the target model family (spec §6
// `output_model_type`). The core never branches on it directly; it only
// gates [model.CheckMultipleInheritance] through
// [OutputModelType.AllowsMultipleInheritance]. The core attaches no
// [model.DataclassAttrs]; [OutputModelType.IsDataclassFamily] reports the
// family they apply to. Everything else is the external [emit.Printer]'s
// concern.
type OutputModelType string

const (
	PydanticBaseModel    OutputModelType = "pydantic.BaseModel"
	PydanticV2BaseModel  OutputModelType = "pydantic_v2.BaseModel"
	PydanticV2Dataclass  OutputModelType = "pydantic_v2.dataclass"
	DataclassesDataclass OutputModelType = "dataclasses.dataclass"
	TypingTypedDict      OutputModelType = "typing.TypedDict"
	MsgspecStruct        OutputModelType = "msgspec.Struct"
)

// AllowsMultipleInheritance reports whether t's runtime can represent a
// class with more than one base (spec §4.6's "Deep inheritance / mixins"
// note). TypedDict has no class statement to hang bases off, so it is the
// one family that cannot.
func (t OutputModelType) AllowsMultipleInheritance() bool {
	return t != TypingTypedDict
}

// IsDataclassFamily reports whether t is emitted via `@dataclass`-shaped
// field declarations, the family [model.DataclassAttrs] applies to.
func (t OutputModelType) IsDataclassFamily() bool {
	return t == PydanticV2Dataclass || t == DataclassesDataclass
}

// MinTargetVersion and MaxTargetVersion bound `target_language_version`
// (spec §6): versions the emitted syntax (PEP 604 `X | Y`, PEP 695
// generics) can't be assumed available below, and the newest version this
// generator has been exercised against.
const (
	MinTargetVersion = 10
	MaxTargetVersion = 13
)

// OpenAPIScope names one section of an OpenAPI document `openapi_scopes`
// (spec §6) enables top-level schema discovery from.
type OpenAPIScope string

const (
	OpenAPIScopeSchemas      OpenAPIScope = "schemas"
	OpenAPIScopePaths        OpenAPIScope = "paths"
	OpenAPIScopeTags         OpenAPIScope = "tags"
	OpenAPIScopeParameters   OpenAPIScope = "parameters"
	OpenAPIScopeWebhooks     OpenAPIScope = "webhooks"
	OpenAPIScopeRequestBodies OpenAPIScope = "requestBodies"
)

// GraphQLScope names one section of a GraphQL SDL document `graphql_scopes`
// enables discovery from. The parser (input.parseGraphQL) only produces a
// schema-shaped document today, so `schema` is the only member.
type GraphQLScope string

const GraphQLScopeSchema GraphQLScope = "schema"
