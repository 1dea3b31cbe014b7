package common

import "strings"

// Manifest represents a .pplugin file.
type Manifest struct {
	Schema       string       `json:"$schema,omitempty"`
	Version      string       `json:"version,omitempty"`
	Name         string       `json:"name"` // e.g. "PlayerManager"
	Description  string       `json:"description,omitempty"`
	Author       string       `json:"author,omitempty"`
	Website      string       `json:"website,omitempty"`
	License      string       `json:"license,omitempty"`
	Entry        string       `json:"entry,omitempty"`
	Language     string       `json:"language,omitempty"`
	Platforms    []string     `json:"platforms,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
	Methods      []Method     `json:"methods"`
}

type Dependency struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

// Method is an exported plugin function.
type Method struct {
	Name        string     `json:"name"`     // display name, e.g. "GetHealth"
	Group       string     `json:"group"`    // case-insensitive grouping label, e.g. "Core"
	FuncName    string     `json:"funcName"` // internal symbol key, e.g. "player.GetHealth"
	Description string     `json:"description,omitempty"`
	Deprecated  string     `json:"deprecated,omitempty"`
	ParamTypes  []Property `json:"paramTypes"`
	RetType     Property   `json:"retType"`
}

// Property describes both parameters and return values.
type Property struct {
	Name        string     `json:"name,omitempty"`
	Type        string     `json:"type"` // manifest type tag, e.g. "int32", "string[]", "function"
	Ref         bool       `json:"ref,omitempty"`
	Description string     `json:"description,omitempty"`
	Default     *int64     `json:"default,omitempty"` // default argument of a trailing scalar parameter
	Alias       *Alias     `json:"alias,omitempty"`
	Enum        *Enum      `json:"enum,omitempty"`
	Prototype   *Prototype `json:"prototype,omitempty"`
}

// Alias names the type of a property, e.g. "EntityHandle" for a ptr64.
type Alias struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Prototype is the shape of a function-pointer parameter.
type Prototype struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ParamTypes  []Property `json:"paramTypes"`
	RetType     Property   `json:"retType"`
}

type Enum struct {
	Name        string      `json:"name"`
	Type        string      `json:"type,omitempty"` // underlying integer tag, defaults to the referencing property's tag
	Description string      `json:"description,omitempty"`
	Values      []EnumValue `json:"values"`
}

type EnumValue struct {
	Name        string `json:"name"`
	Value       int64  `json:"value"`
	Description string `json:"description,omitempty"`
}

// IsArray reports whether the tag is the array form of another tag.
func IsArray(tag string) bool {
	return len(tag) > 2 && strings.HasSuffix(tag, "[]")
}

// ElementTag strips the array suffix from a tag.
func ElementTag(tag string) string {
	return strings.TrimSuffix(tag, "[]")
}
