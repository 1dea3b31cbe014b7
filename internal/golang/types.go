package golang

import "github.com/saffronjam/plugify-bindgen/internal/common"

// runtimePackage is the name the runtime import is bound to in every file.
const runtimePackage = "plugify"

// DisplayTypes maps manifest tags to the Go types of the exported wrappers.
var DisplayTypes = common.TypeTable{
	Name:    "golang",
	Profile: common.DisplayProfile,
	Types: map[string]common.Mapping{
		"void":     {Token: "void"}, // never rendered, void results are omitted
		"bool":     {Token: "bool"},
		"char8":    {Token: "int8"},
		"char16":   {Token: "uint16"},
		"int8":     {Token: "int8"},
		"int16":    {Token: "int16"},
		"int32":    {Token: "int32"},
		"int64":    {Token: "int64"},
		"uint8":    {Token: "uint8"},
		"uint16":   {Token: "uint16"},
		"uint32":   {Token: "uint32"},
		"uint64":   {Token: "uint64"},
		"ptr64":    {Token: "uintptr"},
		"float":    {Token: "float32"},
		"double":   {Token: "float64"},
		"function": {Token: "uintptr"},
		"string":   {Token: "string"},
		"any":      {Token: "any"},
		"vec2":     {Token: "plugify.Vector2"},
		"vec3":     {Token: "plugify.Vector3"},
		"vec4":     {Token: "plugify.Vector4"},
		"mat4x4":   {Token: "plugify.Matrix4x4"},
		"bool[]":   {Token: "[]bool"},
		"char8[]":  {Token: "[]int8"},
		"char16[]": {Token: "[]uint16"},
		"int8[]":   {Token: "[]int8"},
		"int16[]":  {Token: "[]int16"},
		"int32[]":  {Token: "[]int32"},
		"int64[]":  {Token: "[]int64"},
		"uint8[]":  {Token: "[]uint8"},
		"uint16[]": {Token: "[]uint16"},
		"uint32[]": {Token: "[]uint32"},
		"uint64[]": {Token: "[]uint64"},
		"ptr64[]":  {Token: "[]uintptr"},
		"float[]":  {Token: "[]float32"},
		"double[]": {Token: "[]float64"},
		"string[]": {Token: "[]string"},
		"any[]":    {Token: "[]any"},
		"vec2[]":   {Token: "[]plugify.Vector2"},
		"vec3[]":   {Token: "[]plugify.Vector3"},
		"vec4[]":   {Token: "[]plugify.Vector4"},
		"mat4x4[]": {Token: "[]plugify.Matrix4x4"},
	},
	EnumArray: common.Mapping{Token: "[]%s"},
}

// BindingTypes maps manifest tags to the Go types of the registered foreign
// functions. Strings, variants and arrays cross the boundary as pointers to
// runtime carriers; vectors and matrices are passed by pointer as is.
var BindingTypes = common.TypeTable{
	Name:    "golang",
	Profile: common.BindingProfile,
	Types: map[string]common.Mapping{
		"void":     {Token: "void"},
		"bool":     {Token: "bool"},
		"char8":    {Token: "int8"},
		"char16":   {Token: "uint16"},
		"int8":     {Token: "int8"},
		"int16":    {Token: "int16"},
		"int32":    {Token: "int32"},
		"int64":    {Token: "int64"},
		"uint8":    {Token: "uint8"},
		"uint16":   {Token: "uint16"},
		"uint32":   {Token: "uint32"},
		"uint64":   {Token: "uint64"},
		"ptr64":    {Token: "uintptr"},
		"float":    {Token: "float32"},
		"double":   {Token: "float64"},
		"function": {Token: "uintptr"},
		"string":   {Token: "*plugify.PlgString", Passing: common.PassWrapped},
		"any":      {Token: "*plugify.PlgVariant", Passing: common.PassWrapped},
		"vec2":     {Token: "*plugify.Vector2", Passing: common.PassReference},
		"vec3":     {Token: "*plugify.Vector3", Passing: common.PassReference},
		"vec4":     {Token: "*plugify.Vector4", Passing: common.PassReference},
		"mat4x4":   {Token: "*plugify.Matrix4x4", Passing: common.PassReference},
		"bool[]":   {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"char8[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"char16[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"int8[]":   {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"int16[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"int32[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"int64[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"uint8[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"uint16[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"uint32[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"uint64[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"ptr64[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"float[]":  {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"double[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"string[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"any[]":    {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"vec2[]":   {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"vec3[]":   {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"vec4[]":   {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
		"mat4x4[]": {Token: "*plugify.PlgVector", Passing: common.PassWrapped},
	},
	EnumArray: common.Mapping{Token: "*plugify.PlgVector", Passing: common.PassWrapped},
}

// elementNames name the runtime helpers of a wrapped tag, e.g. the "Int32"
// of ConstructVectorInt32.
var elementNames = map[string]string{
	"bool":   "Bool",
	"char8":  "Char8",
	"char16": "Char16",
	"int8":   "Int8",
	"int16":  "Int16",
	"int32":  "Int32",
	"int64":  "Int64",
	"uint8":  "UInt8",
	"uint16": "UInt16",
	"uint32": "UInt32",
	"uint64": "UInt64",
	"ptr64":  "Pointer",
	"float":  "Float",
	"double": "Double",
	"string": "String",
	"any":    "Variant",
	"vec2":   "Vector2",
	"vec3":   "Vector3",
	"vec4":   "Vector4",
	"mat4x4": "Matrix4x4",
}

// ReservedWords are the Go keywords, the predeclared identifiers and the
// names every generated file refers to.
var ReservedWords = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type",
	"var", "any", "append", "bool", "byte", "cap", "clear", "close", "complex",
	"complex64", "complex128", "comparable", "copy", "delete", "error",
	"false", "float32", "float64", "imag", "int", "int8", "int16", "int32",
	"int64", "iota", "len", "make", "max", "min", "new", "nil", "panic",
	"print", "println", "real", "recover", "rune", "string", "true", "uint",
	"uint8", "uint16", "uint32", "uint64", "uintptr",
	"bind", "init", "plugify", "purego",
}
