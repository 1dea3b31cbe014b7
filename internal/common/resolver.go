package common

import (
	"fmt"
	"strings"
)

// TypeTags is the closed set of manifest type tags.
var TypeTags = []string{
	"void", "bool", "char8", "char16",
	"int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64",
	"ptr64", "float", "double", "string", "any", "function",
	"vec2", "vec3", "vec4", "mat4x4",
	"bool[]", "char8[]", "char16[]",
	"int8[]", "int16[]", "int32[]", "int64[]",
	"uint8[]", "uint16[]", "uint32[]", "uint64[]",
	"ptr64[]", "float[]", "double[]", "string[]", "any[]",
	"vec2[]", "vec3[]", "vec4[]", "mat4x4[]",
}

var (
	knownTags   = make(map[string]struct{}, len(TypeTags))
	integerTags = map[string]struct{}{
		"int8": {}, "int16": {}, "int32": {}, "int64": {},
		"uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	}
)

func init() {
	for _, tag := range TypeTags {
		knownTags[tag] = struct{}{}
	}
}

// IsKnownTag reports whether tag belongs to the closed tag set.
func IsKnownTag(tag string) bool {
	_, ok := knownTags[tag]
	return ok
}

// IsIntegerTag reports whether tag can back an enum.
func IsIntegerTag(tag string) bool {
	_, ok := integerTags[tag]
	return ok
}

// Profile selects the fidelity of a resolved type.
type Profile int

const (
	// DisplayProfile yields the types a caller of the bindings sees.
	DisplayProfile Profile = iota
	// BindingProfile yields the types of the raw foreign-call signature.
	BindingProfile
)

func (p Profile) String() string {
	switch p {
	case DisplayProfile:
		return "display"
	case BindingProfile:
		return "binding"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// Passing tells how a resolved value crosses the call boundary.
type Passing int

const (
	PassDirect    Passing = iota // by value, no conversion
	PassReference                // by reference, same representation on both sides
	PassWrapped                  // through an indirection wrapper that must be unwrapped
)

// Mapping is the target token of one tag.
type Mapping struct {
	Token   string // e.g. "int", "ref PlgA!int", "number[]"
	Passing Passing
}

// Carrier returns the wrapper value type of a wrapped or reference token,
// e.g. "ref PlgA!int" -> "PlgA!int".
func (m Mapping) Carrier() string {
	return strings.TrimPrefix(m.Token, "ref ")
}

// TypeTable maps manifest tags to the tokens of one target in one profile.
type TypeTable struct {
	Name    string
	Profile Profile
	Types   map[string]Mapping

	// EnumArray is the mapping of an array of enums. Every "%s" in its token
	// is replaced by the enum name, e.g. "%s[]" -> "Status[]".
	EnumArray Mapping
}

// Resolve returns the token for t. Delegate and enum references replace the
// primitive mapping of the tag. An alias replaces the token in the display
// profile only; it keeps the passing of the tag it stands for.
func (tt *TypeTable) Resolve(t TypeRef) (Mapping, error) {
	if !IsKnownTag(t.Tag) {
		return Mapping{}, &SchemaError{Field: tt.Name, Tag: t.Tag, Reason: "unknown type tag"}
	}

	if t.Delegate != "" {
		return Mapping{Token: t.Delegate, Passing: PassDirect}, nil
	}

	if t.Enum != "" {
		if t.IsArray() {
			return Mapping{
				Token:   strings.ReplaceAll(tt.EnumArray.Token, "%s", t.Enum),
				Passing: tt.EnumArray.Passing,
			}, nil
		}
		return Mapping{Token: t.Enum, Passing: PassDirect}, nil
	}

	m, ok := tt.Types[t.Tag]
	if !ok || m.Token == "" {
		return Mapping{}, &SchemaError{Field: tt.Name, Tag: t.Tag, Reason: "type tag has no mapping"}
	}
	if t.Alias != "" && tt.Profile == DisplayProfile {
		m.Token = t.Alias
	}
	return m, nil
}

// Validate checks that every tag of the closed set has a non-empty token.
func (tt *TypeTable) Validate() error {
	var missing []string
	for _, tag := range TypeTags {
		if m, ok := tt.Types[tag]; !ok || m.Token == "" {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("type table %s (%s profile) is missing tags: %s", tt.Name, tt.Profile, strings.Join(missing, ", "))
	}
	if tt.EnumArray.Token == "" {
		return fmt.Errorf("type table %s (%s profile) has no enum array mapping", tt.Name, tt.Profile)
	}
	return nil
}
