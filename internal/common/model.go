package common

// Model is the resolved declaration model of one manifest. It is built by
// Converter.Convert and read by the renderers.
type Model struct {
	Plugin    string
	Modules   []*Module
	Enums     []*EnumDecl
	Aliases   []*AliasDecl
	Delegates []*DelegateDecl // every delegate, in first-seen order
	Conflicts []Conflict
}

// Module is the declaration bucket of one group.
type Module struct {
	Name      string // case-folded group label, e.g. "core"
	Functions []*FunctionDecl
	Delegates []*DelegateDecl // delegates first referenced from this group
}

type FunctionDecl struct {
	Name         string // e.g. "GetHealth"
	InternalName string // e.g. "player.GetHealth", the symbol lookup key
	Description  string
	Deprecated   string
	Params       []ParamDecl
	Ret          ReturnDecl
}

type ParamDecl struct {
	Name        string
	Type        TypeRef
	Ref         bool
	Description string
	Default     *int64
}

type ReturnDecl struct {
	Name        string
	Type        TypeRef
	Description string
}

// TypeRef is a manifest tag plus the enum, delegate or alias that replaces
// it in the display profile.
type TypeRef struct {
	Tag      string // e.g. "int32", "int32[]", "function"
	Enum     string // non-empty when the tag is backed by an enum
	Delegate string // non-empty when the tag is "function"
	Alias    string // non-empty when the property names its type
}

func (t TypeRef) IsVoid() bool {
	return t.Tag == "void"
}

func (t TypeRef) IsArray() bool {
	return IsArray(t.Tag)
}

type DelegateDecl struct {
	Name        string
	Description string
	Params      []ParamDecl
	Ret         ReturnDecl
}

type EnumDecl struct {
	Name        string
	Type        string // underlying integer tag
	Description string
	Values      []EnumValueDecl
}

type EnumValueDecl struct {
	Name        string
	Value       int64
	Description string
}

// AliasDecl is a named type standing for a whole tag, arrays included.
type AliasDecl struct {
	Name        string
	Tag         string
	Description string
}

// ConflictKind names the declaration kind of a Conflict.
type ConflictKind string

const (
	ConflictEnum     ConflictKind = "enum"
	ConflictDelegate ConflictKind = "delegate"
	ConflictAlias    ConflictKind = "alias"
)

// Conflict records a later definition that differs from the first definition
// of the same name. The first definition is the one that is emitted.
type Conflict struct {
	Kind   ConflictKind
	Name   string
	Method string // method whose reference carried the divergent definition
}

// Outputs returns the display-profile output channels of fn: the return
// value when it is not void, followed by every by-reference parameter.
func Outputs(fn *FunctionDecl) []TypeRef {
	return outputs(fn.Params, fn.Ret)
}

// DelegateOutputs is Outputs for delegate signatures.
func DelegateOutputs(d *DelegateDecl) []TypeRef {
	return outputs(d.Params, d.Ret)
}

func outputs(params []ParamDecl, ret ReturnDecl) []TypeRef {
	var out []TypeRef
	if !ret.Type.IsVoid() {
		out = append(out, ret.Type)
	}
	for _, p := range params {
		if p.Ref {
			out = append(out, p.Type)
		}
	}
	return out
}

// HasRefParams reports whether any parameter is passed by reference.
func HasRefParams(params []ParamDecl) bool {
	for _, p := range params {
		if p.Ref {
			return true
		}
	}
	return false
}

// TrailingDefaults returns the index of the first parameter of the trailing
// run of defaulted parameters, or len(params) when the last one has none.
// Only that run can be rendered as default arguments.
func TrailingDefaults(params []ParamDecl) int {
	i := len(params)
	for i > 0 && params[i-1].Default != nil {
		i--
	}
	return i
}

// UniqueName returns base, or base with "_" appended until it is not in
// taken, and marks the result as taken.
func UniqueName(taken map[string]bool, base string) string {
	name := base
	for taken[name] {
		name += "_"
	}
	taken[name] = true
	return name
}

// ParamNames returns the set of parameter names of params.
func ParamNames(params []ParamDecl) map[string]bool {
	names := make(map[string]bool, len(params))
	for _, p := range params {
		names[p.Name] = true
	}
	return names
}
