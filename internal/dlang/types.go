package dlang

import "github.com/saffronjam/plugify-bindgen/internal/common"

// DisplayTypes maps manifest tags to the D types of the public wrappers.
var DisplayTypes = common.TypeTable{
	Name:    "dlang",
	Profile: common.DisplayProfile,
	Types: map[string]common.Mapping{
		"void":     {Token: "void"},
		"bool":     {Token: "bool"},
		"char8":    {Token: "char"},
		"char16":   {Token: "wchar"},
		"int8":     {Token: "byte"},
		"int16":    {Token: "short"},
		"int32":    {Token: "int"},
		"int64":    {Token: "long"},
		"uint8":    {Token: "ubyte"},
		"uint16":   {Token: "ushort"},
		"uint32":   {Token: "uint"},
		"uint64":   {Token: "ulong"},
		"ptr64":    {Token: "void*"},
		"float":    {Token: "float"},
		"double":   {Token: "double"},
		"function": {Token: "function"},
		"string":   {Token: "string"},
		"any":      {Token: "PlgV"},
		"vec2":     {Token: "Vec2"},
		"vec3":     {Token: "Vec3"},
		"vec4":     {Token: "Vec4"},
		"mat4x4":   {Token: "Mat4x4"},
		"bool[]":   {Token: "bool[]"},
		"char8[]":  {Token: "char[]"},
		"char16[]": {Token: "wchar[]"},
		"int8[]":   {Token: "byte[]"},
		"int16[]":  {Token: "short[]"},
		"int32[]":  {Token: "int[]"},
		"int64[]":  {Token: "long[]"},
		"uint8[]":  {Token: "ubyte[]"},
		"uint16[]": {Token: "ushort[]"},
		"uint32[]": {Token: "uint[]"},
		"uint64[]": {Token: "ulong[]"},
		"ptr64[]":  {Token: "void*[]"},
		"float[]":  {Token: "float[]"},
		"double[]": {Token: "double[]"},
		"string[]": {Token: "string[]"},
		"any[]":    {Token: "PlgV[]"},
		"vec2[]":   {Token: "Vec2[]"},
		"vec3[]":   {Token: "Vec3[]"},
		"vec4[]":   {Token: "Vec4[]"},
		"mat4x4[]": {Token: "Mat4x4[]"},
	},
	EnumArray: common.Mapping{Token: "%s[]"},
}

// BindingTypes maps manifest tags to the D types of the extern (C)
// signatures. Strings and arrays cross the boundary inside PlgS/PlgA
// carriers; vectors, matrices and PlgV are passed by reference as is.
var BindingTypes = common.TypeTable{
	Name:    "dlang",
	Profile: common.BindingProfile,
	Types: map[string]common.Mapping{
		"void":     {Token: "void"},
		"bool":     {Token: "bool"},
		"char8":    {Token: "char"},
		"char16":   {Token: "wchar"},
		"int8":     {Token: "byte"},
		"int16":    {Token: "short"},
		"int32":    {Token: "int"},
		"int64":    {Token: "long"},
		"uint8":    {Token: "ubyte"},
		"uint16":   {Token: "ushort"},
		"uint32":   {Token: "uint"},
		"uint64":   {Token: "ulong"},
		"ptr64":    {Token: "void*"},
		"float":    {Token: "float"},
		"double":   {Token: "double"},
		"function": {Token: "function"},
		"string":   {Token: "ref PlgS", Passing: common.PassWrapped},
		"any":      {Token: "ref PlgV", Passing: common.PassReference},
		"vec2":     {Token: "ref Vec2", Passing: common.PassReference},
		"vec3":     {Token: "ref Vec3", Passing: common.PassReference},
		"vec4":     {Token: "ref Vec4", Passing: common.PassReference},
		"mat4x4":   {Token: "ref Mat4x4", Passing: common.PassReference},
		"bool[]":   {Token: "ref PlgA!bool", Passing: common.PassWrapped},
		"char8[]":  {Token: "ref PlgA!char", Passing: common.PassWrapped},
		"char16[]": {Token: "ref PlgA!wchar", Passing: common.PassWrapped},
		"int8[]":   {Token: "ref PlgA!byte", Passing: common.PassWrapped},
		"int16[]":  {Token: "ref PlgA!short", Passing: common.PassWrapped},
		"int32[]":  {Token: "ref PlgA!int", Passing: common.PassWrapped},
		"int64[]":  {Token: "ref PlgA!long", Passing: common.PassWrapped},
		"uint8[]":  {Token: "ref PlgA!ubyte", Passing: common.PassWrapped},
		"uint16[]": {Token: "ref PlgA!ushort", Passing: common.PassWrapped},
		"uint32[]": {Token: "ref PlgA!uint", Passing: common.PassWrapped},
		"uint64[]": {Token: "ref PlgA!ulong", Passing: common.PassWrapped},
		"ptr64[]":  {Token: "ref PlgA!(void*)", Passing: common.PassWrapped},
		"float[]":  {Token: "ref PlgA!float", Passing: common.PassWrapped},
		"double[]": {Token: "ref PlgA!double", Passing: common.PassWrapped},
		"string[]": {Token: "ref PlgA!string", Passing: common.PassWrapped},
		"any[]":    {Token: "ref PlgA!PlgV", Passing: common.PassWrapped},
		"vec2[]":   {Token: "ref PlgA!Vec2", Passing: common.PassWrapped},
		"vec3[]":   {Token: "ref PlgA!Vec3", Passing: common.PassWrapped},
		"vec4[]":   {Token: "ref PlgA!Vec4", Passing: common.PassWrapped},
		"mat4x4[]": {Token: "ref PlgA!Mat4x4", Passing: common.PassWrapped},
	},
	EnumArray: common.Mapping{Token: "ref PlgA!%s", Passing: common.PassWrapped},
}

// ReservedWords are the D keywords and reserved identifiers.
var ReservedWords = []string{
	"abstract", "alias", "align", "asm", "assert", "auto", "body", "bool",
	"break", "byte", "case", "cast", "catch", "cdouble", "cent", "cfloat",
	"char", "class", "const", "continue", "creal", "dchar", "debug", "default",
	"delegate", "delete", "deprecated", "do", "double", "else", "enum",
	"export", "extern", "false", "final", "finally", "float", "for", "foreach",
	"foreach_reverse", "function", "goto", "idouble", "if", "ifloat",
	"immutable", "import", "in", "inout", "int", "interface", "invariant",
	"ireal", "is", "lazy", "long", "macro", "mixin", "module", "new", "nothrow",
	"null", "out", "override", "package", "pragma", "private", "protected",
	"public", "pure", "real", "ref", "return", "scope", "shared", "short",
	"static", "struct", "super", "switch", "synchronized", "template", "this",
	"throw", "true", "try", "typedef", "typeid", "typeof", "ubyte", "ucent",
	"uint", "ulong", "union", "unittest", "ushort", "version", "void",
	"volatile", "wchar", "while", "with", "__FILE__", "__MODULE__",
	"__LINE__", "__FUNCTION__", "__PRETTY_FUNCTION__", "__gshared",
	"__traits", "__vector", "__parameters",
}
