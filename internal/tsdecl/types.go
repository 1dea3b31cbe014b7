package tsdecl

import "github.com/saffronjam/plugify-bindgen/internal/common"

// Types maps manifest tags to TypeScript declaration types.
var Types = common.TypeTable{
	Name:    "typescript",
	Profile: common.DisplayProfile,
	Types: map[string]common.Mapping{
		"void":     {Token: "void"},
		"bool":     {Token: "boolean"},
		"char8":    {Token: "string"},
		"char16":   {Token: "string"},
		"int8":     {Token: "number"},
		"int16":    {Token: "number"},
		"int32":    {Token: "number"},
		"int64":    {Token: "number"},
		"uint8":    {Token: "number"},
		"uint16":   {Token: "number"},
		"uint32":   {Token: "number"},
		"uint64":   {Token: "bigint"},
		"ptr64":    {Token: "bigint"},
		"float":    {Token: "number"},
		"double":   {Token: "number"},
		"function": {Token: "Function"},
		"string":   {Token: "string"},
		"any":      {Token: "any"},
		"vec2":     {Token: "Vector2"},
		"vec3":     {Token: "Vector3"},
		"vec4":     {Token: "Vector4"},
		"mat4x4":   {Token: "Matrix4x4"},
		"bool[]":   {Token: "boolean[]"},
		"char8[]":  {Token: "string[]"},
		"char16[]": {Token: "string[]"},
		"int8[]":   {Token: "number[]"},
		"int16[]":  {Token: "number[]"},
		"int32[]":  {Token: "number[]"},
		"int64[]":  {Token: "number[]"},
		"uint8[]":  {Token: "number[]"},
		"uint16[]": {Token: "number[]"},
		"uint32[]": {Token: "number[]"},
		"uint64[]": {Token: "bigint[]"},
		"ptr64[]":  {Token: "bigint[]"},
		"float[]":  {Token: "number[]"},
		"double[]": {Token: "number[]"},
		"string[]": {Token: "string[]"},
		"any[]":    {Token: "any[]"},
		"vec2[]":   {Token: "Vector2[]"},
		"vec3[]":   {Token: "Vector3[]"},
		"vec4[]":   {Token: "Vector4[]"},
		"mat4x4[]": {Token: "Matrix4x4[]"},
	},
	EnumArray: common.Mapping{Token: "%s[]"},
}

// ReservedWords are the JavaScript and TypeScript reserved words.
var ReservedWords = []string{
	"await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "enum", "export",
	"extends", "false", "finally", "for", "function", "if", "implements",
	"import", "in", "instanceof", "interface", "let", "new", "null",
	"package", "private", "protected", "public", "return", "static",
	"super", "switch", "this", "throw", "true", "try", "typeof", "var",
	"void", "while", "with", "yield",
}
