package common

import (
	"fmt"

	"github.com/tliron/commonlog"
)

// Converter walks a manifest into the resolved declaration model of one
// rendering target. The target's reserved words drive identifier renaming.
type Converter struct {
	Reserved ReservedWords

	log commonlog.Logger
}

// NewConverter initializes a Converter with the reserved words of a target.
func NewConverter(reserved []string) *Converter {
	return &Converter{
		Reserved: NewReservedWords(reserved),
		log:      commonlog.GetLogger("plugify-bindgen.converter"),
	}
}

// Convert builds a fresh Model from m. Methods are processed in manifest
// order, enums and delegates are registered in first-seen order and later
// duplicates of a name are skipped.
func (c *Converter) Convert(m *Manifest) (*Model, error) {
	b := &builder{
		Converter: c,
		model:     &Model{Plugin: m.Name},
		modules:   make(map[string]*Module),
		enums:     make(map[string]*EnumDecl),
		aliases:   make(map[string]*AliasDecl),
		delegates: make(map[string]*DelegateDecl),
	}

	for i := range m.Methods {
		if err := b.method(i, &m.Methods[i]); err != nil {
			return nil, err
		}
	}

	return b.model, nil
}

type builder struct {
	*Converter

	model     *Model
	modules   map[string]*Module
	enums     map[string]*EnumDecl
	aliases   map[string]*AliasDecl
	delegates map[string]*DelegateDecl

	// method being walked and its group bucket
	current string
	module  *Module
}

func (b *builder) method(i int, m *Method) error {
	path := fmt.Sprintf("methods[%d]", i)
	if m.Name == "" {
		return &SchemaError{Field: path + ".name", Reason: "method name is required"}
	}
	if m.FuncName == "" {
		return &SchemaError{Field: path + ".funcName", Reason: "method funcName is required"}
	}

	b.current = m.Name
	b.module = b.moduleFor(GroupName(m.Group))

	params, err := b.params(path, m.ParamTypes)
	if err != nil {
		return err
	}

	ret, err := b.ret(path+".retType", &m.RetType)
	if err != nil {
		return err
	}

	b.module.Functions = append(b.module.Functions, &FunctionDecl{
		Name:         b.Reserved.Sanitize(m.Name),
		InternalName: m.FuncName,
		Description:  m.Description,
		Deprecated:   m.Deprecated,
		Params:       params,
		Ret:          ret,
	})
	return nil
}

func (b *builder) moduleFor(name string) *Module {
	if mod, ok := b.modules[name]; ok {
		return mod
	}
	mod := &Module{Name: name}
	b.modules[name] = mod
	b.model.Modules = append(b.model.Modules, mod)
	return mod
}

func (b *builder) params(path string, props []Property) ([]ParamDecl, error) {
	params := make([]ParamDecl, 0, len(props))
	for j := range props {
		p := &props[j]
		field := fmt.Sprintf("%s.paramTypes[%d]", path, j)
		t, err := b.typeRef(field, p)
		if err != nil {
			return nil, err
		}
		if p.Default != nil && (p.Ref || !defaultTags[p.Type]) {
			return nil, &SchemaError{Field: field + ".default", Tag: p.Type, Reason: "default requires a scalar parameter passed by value, got"}
		}
		params = append(params, ParamDecl{
			Name:        b.Reserved.ParamName(p.Name, j),
			Type:        t,
			Ref:         p.Ref,
			Description: p.Description,
			Default:     p.Default,
		})
	}
	if first := TrailingDefaults(params); first > 0 {
		for _, p := range params[:first] {
			if p.Default != nil {
				b.log.Warningf("default of parameter %q of %q is not trailing and is not rendered", p.Name, b.current)
			}
		}
	}
	return params, nil
}

// defaultTags are the tags whose parameters accept an integer default.
var defaultTags = map[string]bool{
	"bool": true, "char8": true, "char16": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float": true, "double": true,
}

func (b *builder) ret(path string, p *Property) (ReturnDecl, error) {
	t, err := b.typeRef(path, p)
	if err != nil {
		return ReturnDecl{}, err
	}
	ret := ReturnDecl{Type: t, Description: p.Description}
	if p.Name != "" {
		ret.Name = b.Reserved.Sanitize(p.Name)
	}
	return ret, nil
}

// typeRef validates the tag of p and registers the enum or prototype it
// carries. A prototype is walked before the reference to it is returned.
func (b *builder) typeRef(path string, p *Property) (TypeRef, error) {
	if p.Type == "" {
		return TypeRef{}, &SchemaError{Field: path + ".type", Reason: "type is required"}
	}
	if !IsKnownTag(p.Type) {
		return TypeRef{}, &SchemaError{Field: path + ".type", Tag: p.Type, Reason: "unknown type tag"}
	}

	t := TypeRef{Tag: p.Type}

	if p.Type == "function" {
		if p.Prototype == nil {
			return TypeRef{}, &SchemaError{Field: path + ".prototype", Tag: p.Type, Reason: "prototype is required for"}
		}
		name, err := b.delegate(path+".prototype", p.Prototype)
		if err != nil {
			return TypeRef{}, err
		}
		t.Delegate = name
		return t, nil
	}

	switch {
	case p.Enum != nil:
		name, err := b.enum(path+".enum", p.Enum, ElementTag(p.Type))
		if err != nil {
			return TypeRef{}, err
		}
		t.Enum = name
	case p.Alias != nil:
		name, err := b.alias(path+".alias", p.Alias, p.Type)
		if err != nil {
			return TypeRef{}, err
		}
		t.Alias = name
	}

	return t, nil
}

func (b *builder) alias(path string, a *Alias, tag string) (string, error) {
	if a.Name == "" {
		return "", &SchemaError{Field: path + ".name", Reason: "alias name is required"}
	}
	if tag == "void" {
		return "", &SchemaError{Field: path, Tag: tag, Reason: "alias is not allowed on"}
	}

	decl := &AliasDecl{
		Name:        b.Reserved.Sanitize(a.Name),
		Tag:         tag,
		Description: a.Description,
	}

	if prev, ok := b.aliases[decl.Name]; ok {
		if prev.Tag != decl.Tag {
			b.conflict(ConflictAlias, decl.Name)
		}
		return decl.Name, nil
	}

	b.aliases[decl.Name] = decl
	b.model.Aliases = append(b.model.Aliases, decl)
	return decl.Name, nil
}

func (b *builder) delegate(path string, proto *Prototype) (string, error) {
	if proto.Name == "" {
		return "", &SchemaError{Field: path + ".name", Reason: "prototype name is required"}
	}

	params, err := b.params(path, proto.ParamTypes)
	if err != nil {
		return "", err
	}
	ret, err := b.ret(path+".retType", &proto.RetType)
	if err != nil {
		return "", err
	}

	decl := &DelegateDecl{
		Name:        b.Reserved.Sanitize(proto.Name),
		Description: proto.Description,
		Params:      params,
		Ret:         ret,
	}

	if prev, ok := b.delegates[decl.Name]; ok {
		if !sameDelegate(prev, decl) {
			b.conflict(ConflictDelegate, decl.Name)
		}
		return decl.Name, nil
	}

	b.delegates[decl.Name] = decl
	b.model.Delegates = append(b.model.Delegates, decl)
	b.module.Delegates = append(b.module.Delegates, decl)
	return decl.Name, nil
}

func (b *builder) enum(path string, e *Enum, fallback string) (string, error) {
	if e.Name == "" {
		return "", &SchemaError{Field: path + ".name", Reason: "enum name is required"}
	}

	underlying := e.Type
	if underlying == "" {
		underlying = fallback
	}
	if !IsIntegerTag(underlying) {
		return "", &SchemaError{Field: path + ".type", Tag: underlying, Reason: "enum requires an integer type, got"}
	}

	decl := &EnumDecl{
		Name:        b.Reserved.Sanitize(e.Name),
		Type:        underlying,
		Description: e.Description,
		Values:      make([]EnumValueDecl, 0, len(e.Values)),
	}
	for k, v := range e.Values {
		if v.Name == "" {
			return "", &SchemaError{Field: fmt.Sprintf("%s.values[%d].name", path, k), Reason: "enum value name is required"}
		}
		decl.Values = append(decl.Values, EnumValueDecl{
			Name:        b.Reserved.Sanitize(v.Name),
			Value:       v.Value,
			Description: v.Description,
		})
	}

	if prev, ok := b.enums[decl.Name]; ok {
		if !sameEnum(prev, decl) {
			b.conflict(ConflictEnum, decl.Name)
		}
		return decl.Name, nil
	}

	b.enums[decl.Name] = decl
	b.model.Enums = append(b.model.Enums, decl)
	return decl.Name, nil
}

func (b *builder) conflict(kind ConflictKind, name string) {
	b.model.Conflicts = append(b.model.Conflicts, Conflict{Kind: kind, Name: name, Method: b.current})
	b.log.Warningf("%s %q is redefined with different members by method %q, keeping the first definition", kind, name, b.current)
}

// sameEnum compares the emitted shape of two enums; descriptions are ignored.
func sameEnum(a, b *EnumDecl) bool {
	if a.Type != b.Type || len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if a.Values[i].Name != b.Values[i].Name || a.Values[i].Value != b.Values[i].Value {
			return false
		}
	}
	return true
}

// sameDelegate compares two delegate signatures; names and descriptions of
// parameters are ignored.
func sameDelegate(a, b *DelegateDecl) bool {
	if a.Ret.Type != b.Ret.Type || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Type != b.Params[i].Type || a.Params[i].Ref != b.Params[i].Ref {
			return false
		}
	}
	return true
}
