package common

import (
	"errors"
	"testing"
)

func convert(t *testing.T, reserved []string, manifest string) *Model {
	t.Helper()
	m, err := ParseManifest([]byte(manifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	model, err := NewConverter(reserved).Convert(m)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return model
}

func TestConvertGroups(t *testing.T) {
	model := convert(t, nil, `{
		"name": "Player",
		"methods": [
			{"name": "GetHealth", "group": "Core", "funcName": "player.GetHealth", "paramTypes": [], "retType": {"type": "int32"}},
			{"name": "AddItem", "group": "Inventory", "funcName": "player.AddItem", "paramTypes": [], "retType": {"type": "void"}},
			{"name": "SetHealth", "group": "CORE", "funcName": "player.SetHealth", "paramTypes": [], "retType": {"type": "void"}},
			{"name": "Ping", "funcName": "player.Ping", "paramTypes": [], "retType": {"type": "void"}}
		]
	}`)

	if model.Plugin != "Player" {
		t.Errorf("Plugin = %q, want Player", model.Plugin)
	}
	if len(model.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(model.Modules))
	}

	core, inventory := model.Modules[0], model.Modules[1]
	if core.Name != "core" || inventory.Name != "inventory" {
		t.Fatalf("modules = %q, %q, want core, inventory", core.Name, inventory.Name)
	}

	var names []string
	for _, fn := range core.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"GetHealth", "SetHealth", "Ping"}
	if len(names) != len(want) {
		t.Fatalf("core functions = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("core functions = %v, want %v", names, want)
			break
		}
	}

	if got := core.Functions[0].InternalName; got != "player.GetHealth" {
		t.Errorf("InternalName = %q, want player.GetHealth", got)
	}
}

func TestConvertParams(t *testing.T) {
	model := convert(t, []string{"default", "function"}, `{
		"name": "Player",
		"methods": [{
			"name": "function",
			"funcName": "player.Fill",
			"description": "Fills values",
			"deprecated": "use FillAll",
			"paramTypes": [
				{"name": "default", "type": "int32"},
				{"type": "bool"},
				{"name": "values", "type": "int32[]", "ref": true, "description": "Output values"}
			],
			"retType": {"type": "bool", "description": "Success"}
		}]
	}`)

	fn := model.Modules[0].Functions[0]
	if fn.Name != "function_" {
		t.Errorf("Name = %q, want function_", fn.Name)
	}
	if fn.Deprecated != "use FillAll" {
		t.Errorf("Deprecated = %q", fn.Deprecated)
	}
	if len(fn.Params) != 3 {
		t.Fatalf("expected 3 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "default_" {
		t.Errorf("param 0 = %q, want default_", fn.Params[0].Name)
	}
	if fn.Params[1].Name != "p1" {
		t.Errorf("param 1 = %q, want p1", fn.Params[1].Name)
	}
	p := fn.Params[2]
	if p.Name != "values" || !p.Ref || p.Type.Tag != "int32[]" || p.Description != "Output values" {
		t.Errorf("param 2 = %+v", p)
	}
	if fn.Ret.Type.Tag != "bool" || fn.Ret.Description != "Success" {
		t.Errorf("Ret = %+v", fn.Ret)
	}

	outs := Outputs(fn)
	if len(outs) != 2 || outs[0].Tag != "bool" || outs[1].Tag != "int32[]" {
		t.Errorf("Outputs = %+v, want [bool int32[]]", outs)
	}
	if !HasRefParams(fn.Params) {
		t.Error("HasRefParams = false, want true")
	}
}

const statusEnum = `{"name": "Status", "values": [{"name": "OK", "value": 0}, {"name": "FAIL", "value": 1}]}`

func TestConvertEnumDedup(t *testing.T) {
	model := convert(t, nil, `{
		"name": "Player",
		"methods": [
			{"name": "GetStatus", "funcName": "a", "paramTypes": [], "retType": {"type": "int32", "enum": `+statusEnum+`}},
			{"name": "SetStatus", "group": "Other", "funcName": "b", "paramTypes": [{"name": "s", "type": "int32", "enum": `+statusEnum+`}], "retType": {"type": "void"}},
			{"name": "GetAll", "funcName": "c", "paramTypes": [], "retType": {"type": "int32[]", "enum": `+statusEnum+`}}
		]
	}`)

	if len(model.Enums) != 1 {
		t.Fatalf("expected 1 enum, got %d", len(model.Enums))
	}
	e := model.Enums[0]
	if e.Name != "Status" || e.Type != "int32" || len(e.Values) != 2 {
		t.Errorf("enum = %+v", e)
	}
	if len(model.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %+v", model.Conflicts)
	}

	ret := model.Modules[0].Functions[0].Ret.Type
	if ret.Enum != "Status" {
		t.Errorf("return enum = %q, want Status", ret.Enum)
	}
	arr := model.Modules[0].Functions[1].Ret.Type
	if arr.Enum != "Status" || !arr.IsArray() {
		t.Errorf("array return = %+v", arr)
	}
}

func TestConvertEnumConflict(t *testing.T) {
	model := convert(t, nil, `{
		"name": "Player",
		"methods": [
			{"name": "A", "funcName": "a", "paramTypes": [], "retType": {"type": "int32", "enum": `+statusEnum+`}},
			{"name": "B", "funcName": "b", "paramTypes": [], "retType": {"type": "int32", "enum": {"name": "Status", "values": [{"name": "OK", "value": 5}]}}}
		]
	}`)

	if len(model.Enums) != 1 {
		t.Fatalf("expected 1 enum, got %d", len(model.Enums))
	}
	if v := model.Enums[0].Values; len(v) != 2 || v[0].Value != 0 {
		t.Errorf("first definition should win, got %+v", v)
	}
	if len(model.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(model.Conflicts))
	}
	c := model.Conflicts[0]
	if c.Kind != ConflictEnum || c.Name != "Status" || c.Method != "B" {
		t.Errorf("conflict = %+v", c)
	}
}

func TestConvertDelegates(t *testing.T) {
	model := convert(t, nil, `{
		"name": "Events",
		"methods": [
			{
				"name": "OnTick", "group": "Timers", "funcName": "a",
				"paramTypes": [{"name": "cb", "type": "function", "prototype": {
					"name": "TickCallback",
					"paramTypes": [
						{"name": "done", "type": "function", "prototype": {"name": "DoneCallback", "paramTypes": [], "retType": {"type": "void"}}},
						{"name": "delta", "type": "float"}
					],
					"retType": {"type": "void"}
				}}],
				"retType": {"type": "void"}
			},
			{
				"name": "OnTickOnce", "group": "Other", "funcName": "b",
				"paramTypes": [{"name": "cb", "type": "function", "prototype": {
					"name": "TickCallback",
					"paramTypes": [
						{"name": "finish", "type": "function", "prototype": {"name": "DoneCallback", "paramTypes": [], "retType": {"type": "void"}}},
						{"name": "dt", "type": "float"}
					],
					"retType": {"type": "void"}
				}}],
				"retType": {"type": "void"}
			}
		]
	}`)

	if len(model.Delegates) != 2 {
		t.Fatalf("expected 2 delegates, got %d", len(model.Delegates))
	}
	if model.Delegates[0].Name != "DoneCallback" || model.Delegates[1].Name != "TickCallback" {
		t.Errorf("delegates = %s, %s, want nested first", model.Delegates[0].Name, model.Delegates[1].Name)
	}
	if len(model.Conflicts) != 0 {
		t.Errorf("parameter names must not cause conflicts: %+v", model.Conflicts)
	}

	timers, other := model.Modules[0], model.Modules[1]
	if len(timers.Delegates) != 2 {
		t.Errorf("timers should own both delegates, got %d", len(timers.Delegates))
	}
	if len(other.Delegates) != 0 {
		t.Errorf("other should own no delegate, got %d", len(other.Delegates))
	}

	cb := timers.Functions[0].Params[0].Type
	if cb.Delegate != "TickCallback" {
		t.Errorf("param delegate = %q, want TickCallback", cb.Delegate)
	}
}

func TestConvertDelegateConflict(t *testing.T) {
	model := convert(t, nil, `{
		"name": "Events",
		"methods": [
			{"name": "A", "funcName": "a", "paramTypes": [{"name": "cb", "type": "function", "prototype": {"name": "Cb", "paramTypes": [], "retType": {"type": "void"}}}], "retType": {"type": "void"}},
			{"name": "B", "funcName": "b", "paramTypes": [{"name": "cb", "type": "function", "prototype": {"name": "Cb", "paramTypes": [], "retType": {"type": "int32"}}}], "retType": {"type": "void"}}
		]
	}`)

	if len(model.Delegates) != 1 {
		t.Fatalf("expected 1 delegate, got %d", len(model.Delegates))
	}
	if !model.Delegates[0].Ret.Type.IsVoid() {
		t.Error("first definition should win")
	}
	if len(model.Conflicts) != 1 || model.Conflicts[0].Kind != ConflictDelegate {
		t.Errorf("conflicts = %+v", model.Conflicts)
	}
}

func TestConvertDefaults(t *testing.T) {
	model := convert(t, nil, `{
		"name": "P",
		"methods": [{
			"name": "Spawn",
			"funcName": "p.Spawn",
			"paramTypes": [
				{"name": "count", "type": "int32", "default": 3},
				{"name": "name", "type": "string"},
				{"name": "status", "type": "int32", "default": 1, "enum": ` + statusEnum + `},
				{"name": "visible", "type": "bool", "default": 1}
			],
			"retType": {"type": "void"}
		}]
	}`)

	params := model.Modules[0].Functions[0].Params
	if params[0].Default == nil || *params[0].Default != 3 {
		t.Errorf("count default = %v, want 3", params[0].Default)
	}
	if params[1].Default != nil {
		t.Errorf("name default = %v, want nil", *params[1].Default)
	}
	if params[2].Type.Enum != "Status" || params[2].Default == nil || *params[2].Default != 1 {
		t.Errorf("status = %+v", params[2])
	}
	if got := TrailingDefaults(params); got != 2 {
		t.Errorf("TrailingDefaults = %d, want 2", got)
	}
}

func TestConvertAliases(t *testing.T) {
	model := convert(t, []string{"handle"}, `{
		"name": "P",
		"methods": [
			{"name": "Find", "funcName": "p.Find", "paramTypes": [{"name": "tags", "type": "string[]", "alias": {"name": "TagList"}}], "retType": {"type": "ptr64", "alias": {"name": "EntityHandle", "description": "Opaque entity"}}},
			{"name": "Kill", "funcName": "p.Kill", "paramTypes": [{"name": "e", "type": "ptr64", "alias": {"name": "EntityHandle"}}], "retType": {"type": "void"}},
			{"name": "Name", "funcName": "p.Name", "paramTypes": [{"name": "e", "type": "int64", "alias": {"name": "EntityHandle"}}], "retType": {"type": "int32", "alias": {"name": "handle"}, "enum": ` + statusEnum + `}}
		]
	}`)

	if len(model.Aliases) != 2 {
		t.Fatalf("expected 2 aliases, got %+v", model.Aliases)
	}
	if a := model.Aliases[0]; a.Name != "TagList" || a.Tag != "string[]" {
		t.Errorf("first alias = %+v", a)
	}
	if a := model.Aliases[1]; a.Name != "EntityHandle" || a.Tag != "ptr64" || a.Description != "Opaque entity" {
		t.Errorf("second alias = %+v", a)
	}

	find := model.Modules[0].Functions[0]
	if find.Params[0].Type.Alias != "TagList" || find.Ret.Type.Alias != "EntityHandle" {
		t.Errorf("Find types = %+v, %+v", find.Params[0].Type, find.Ret.Type)
	}

	name := model.Modules[0].Functions[2]
	if name.Ret.Type.Alias != "" || name.Ret.Type.Enum != "Status" {
		t.Errorf("an enum should take precedence over an alias: %+v", name.Ret.Type)
	}

	if len(model.Conflicts) != 1 || model.Conflicts[0].Kind != ConflictAlias || model.Conflicts[0].Method != "Name" {
		t.Errorf("conflicts = %+v", model.Conflicts)
	}
}

func TestConvertSchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		field    string
	}{
		{
			"unknown tag",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "x", "type": "int128"}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].type",
		},
		{
			"missing return type",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [], "retType": {}}]}`,
			"methods[0].retType.type",
		},
		{
			"missing funcName",
			`{"name": "P", "methods": [{"name": "A", "paramTypes": [], "retType": {"type": "void"}}]}`,
			"methods[0].funcName",
		},
		{
			"function without prototype",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "cb", "type": "function"}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].prototype",
		},
		{
			"enum on float",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [], "retType": {"type": "float", "enum": {"name": "E", "values": []}}}]}`,
			"methods[0].retType.enum.type",
		},
		{
			"default on ref",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "x", "type": "int32", "ref": true, "default": 1}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].default",
		},
		{
			"default on string",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "s", "type": "string", "default": 0}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].default",
		},
		{
			"alias without name",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "h", "type": "ptr64", "alias": {}}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].alias.name",
		},
		{
			"alias on void",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [], "retType": {"type": "void", "alias": {"name": "Nothing"}}}]}`,
			"methods[0].retType.alias",
		},
		{
			"nested prototype tag",
			`{"name": "P", "methods": [{"name": "A", "funcName": "a", "paramTypes": [{"name": "cb", "type": "function", "prototype": {"name": "Cb", "paramTypes": [{"type": "void[]"}], "retType": {"type": "void"}}}], "retType": {"type": "void"}}]}`,
			"methods[0].paramTypes[0].prototype.paramTypes[0].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.manifest))
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			_, err = NewConverter(nil).Convert(m)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if schemaErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", schemaErr.Field, tt.field)
			}
		})
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	manifest := `{
		"name": "P",
		"methods": [
			{"name": "B", "group": "b", "funcName": "b", "paramTypes": [], "retType": {"type": "int32", "enum": ` + statusEnum + `}},
			{"name": "A", "group": "a", "funcName": "a", "paramTypes": [], "retType": {"type": "void"}}
		]
	}`

	first := convert(t, nil, manifest)
	for i := 0; i < 5; i++ {
		next := convert(t, nil, manifest)
		if len(next.Modules) != len(first.Modules) {
			t.Fatal("module count differs between runs")
		}
		for j := range first.Modules {
			if first.Modules[j].Name != next.Modules[j].Name {
				t.Fatalf("module order differs: %q vs %q", first.Modules[j].Name, next.Modules[j].Name)
			}
		}
	}
	if first.Modules[0].Name != "b" {
		t.Errorf("modules should follow manifest order, got %q first", first.Modules[0].Name)
	}
}
