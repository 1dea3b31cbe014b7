// Package golang renders a Go package of bindings per plugin. Plugin methods
// are registered as Go functions through purego and wrapped by exported
// functions that marshal the runtime carriers.
package golang

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/saffronjam/plugify-bindgen/internal/common"
)

const puregoImport = "github.com/ebitengine/purego"

// Files shared by every group of a plugin package.
const (
	pluginFile    = "plugin"
	typesFile     = "types"
	delegatesFile = "delegates"
)

// Generator renders the Go bindings of a resolved model.
type Generator struct {
	Config common.GolangConfig
}

func New(config common.GolangConfig) *Generator {
	return &Generator{Config: config}
}

func (g *Generator) Name() string {
	return "golang"
}

func (g *Generator) ReservedWords() []string {
	return ReservedWords
}

// Generate renders model into <dir>/<plugin>/plugin.go, types.go and
// delegates.go when the plugin declares any, and one <group>.go per module.
// Every file is gofmt formatted and keeps only the imports it uses.
func (g *Generator) Generate(model *common.Model) (common.Files, error) {
	r := &renderer{
		config:   g.Config,
		model:    model,
		reserved: common.NewReservedWords(ReservedWords),
	}

	r.pkg = common.PluginName(model.Plugin)
	switch {
	case r.pkg == "":
		r.pkg = "plugin"
	case strings.HasPrefix(r.pkg, "_"):
		r.pkg = "p" + r.pkg
	}
	r.pkg = r.reserved.Sanitize(r.pkg)

	sources := map[string]string{
		pluginFile: r.pluginSource(),
	}
	if len(model.Enums) > 0 || len(model.Aliases) > 0 {
		sources[typesFile] = r.typesSource()
	}
	if len(model.Delegates) > 0 {
		sources[delegatesFile] = r.delegatesSource()
	}
	for _, mod := range model.Modules {
		sources[r.fileName(mod)] = r.moduleSource(mod)
	}
	if r.err != nil {
		return nil, r.err
	}

	files := common.Files{}
	for name, src := range sources {
		p := r.path(name)
		out, err := imports.Process(p, []byte(src), &imports.Options{Comments: true, TabIndent: true, TabWidth: 8})
		if err != nil {
			return nil, fmt.Errorf("formatting %s: %w", p, err)
		}
		files[p] = string(out)
	}
	return files, nil
}

type renderer struct {
	config   common.GolangConfig
	model    *common.Model
	reserved common.ReservedWords
	pkg      string

	err error // first resolution error
}

func (r *renderer) path(name string) string {
	return path.Join(r.config.PackageDir, r.pkg, name+".go")
}

// fileName turns a group into a Go file name that the go tool builds on
// every platform and that cannot replace a shared file.
func (r *renderer) fileName(mod *common.Module) string {
	name := mod.Name
	if strings.HasPrefix(name, "_") {
		name = "group" + name
	}
	if i := strings.LastIndex(name, "_"); i >= 0 && constrainedSuffixes[name[i+1:]] {
		name += "_"
	}
	switch name {
	case pluginFile, typesFile, delegatesFile:
		name += "_"
	}
	return name
}

// constrainedSuffixes are the file name suffixes the go tool treats as build
// constraints.
var constrainedSuffixes = map[string]bool{
	"test": true,
	"aix": true, "android": true, "darwin": true, "dragonfly": true,
	"freebsd": true, "hurd": true, "illumos": true, "ios": true, "js": true,
	"linux": true, "netbsd": true, "openbsd": true, "plan9": true,
	"solaris": true, "wasip1": true, "windows": true, "zos": true,
	"386": true, "amd64": true, "arm": true, "arm64": true, "loong64": true,
	"mips": true, "mips64": true, "mips64le": true, "mipsle": true,
	"ppc64": true, "ppc64le": true, "riscv64": true, "s390x": true,
	"wasm": true,
}

// exported upper-cases the first letter of a declared name.
func exported(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError || unicode.IsUpper(first) {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}

func exportedRef(t common.TypeRef) common.TypeRef {
	if t.Enum != "" {
		t.Enum = exported(t.Enum)
	}
	if t.Delegate != "" {
		t.Delegate = exported(t.Delegate)
	}
	if t.Alias != "" {
		t.Alias = exported(t.Alias)
	}
	return t
}

func (r *renderer) display(t common.TypeRef) common.Mapping {
	return r.resolve(&DisplayTypes, exportedRef(t))
}

func (r *renderer) binding(t common.TypeRef) common.Mapping {
	return r.resolve(&BindingTypes, exportedRef(t))
}

func (r *renderer) resolve(table *common.TypeTable, t common.TypeRef) common.Mapping {
	m, err := table.Resolve(t)
	if err != nil && r.err == nil {
		r.err = err
	}
	return m
}

// header starts a file with both imports; the formatter drops the unused
// ones.
func (r *renderer) header(w *common.Writer) {
	w.Line("// Code generated by %s from %s. DO NOT EDIT.", common.GeneratorName, oneLine(r.model.Plugin))
	w.Line("")
	w.Line("package %s", r.pkg)
	w.Line("")
	w.Line("import (")
	w.Indent()
	w.Line("%s %s", runtimePackage, strconv.Quote(r.config.RuntimeImport))
	w.Line("%s", strconv.Quote(puregoImport))
	w.Dedent()
	w.Line(")")
	w.Line("")
}

func (r *renderer) pluginSource() string {
	w := common.NewWriter("\t")
	r.header(w)

	w.Line("// bind resolves a plugin method and registers it as the function fn")
	w.Line("// points to. It panics when the method cannot be resolved.")
	w.Line("func bind(fn any, name string) {")
	w.Indent()
	w.Line("ptr := %s.%s(name)", runtimePackage, r.config.Resolver)
	w.Line("if ptr == 0 {")
	w.Indent()
	w.Line("panic(%s + name)", strconv.Quote("unresolved plugin method "))
	w.Dedent()
	w.Line("}")
	w.Line("purego.RegisterFunc(fn, ptr)")
	w.Dedent()
	w.Line("}")

	return w.String()
}

func (r *renderer) typesSource() string {
	w := common.NewWriter("\t")
	r.header(w)

	taken := make(map[string]bool)
	for _, e := range r.model.Enums {
		r.enum(w, e, taken)
	}

	for _, a := range r.model.Aliases {
		name := exported(a.Name)
		if a.Description != "" {
			w.Line("// %s - %s", name, oneLine(a.Description))
		}
		w.Line("type %s = %s", name, r.display(common.TypeRef{Tag: a.Tag}).Token)
		w.Line("")
	}

	return w.String()
}

// enum writes a defined type and its constants. Constants are named
// <Enum>_<Value>; taken keeps them unique across the package.
func (r *renderer) enum(w *common.Writer, e *common.EnumDecl, taken map[string]bool) {
	name := exported(e.Name)
	if e.Description != "" {
		w.Line("// %s - %s", name, oneLine(e.Description))
	}
	w.Line("type %s %s", name, r.display(common.TypeRef{Tag: e.Type}).Token)
	w.Line("")
	if len(e.Values) == 0 {
		return
	}

	w.Line("const (")
	w.Indent()
	for _, v := range e.Values {
		if v.Description != "" {
			w.Line("// %s", oneLine(v.Description))
		}
		w.Line("%s %s = %d", common.UniqueName(taken, name+"_"+v.Name), name, v.Value)
	}
	w.Dedent()
	w.Line(")")
	w.Line("")
}

func (r *renderer) delegatesSource() string {
	w := common.NewWriter("\t")
	r.header(w)

	for _, d := range r.model.Delegates {
		name := exported(d.Name)
		doc(w, name, d.Description, "", d.Params, d.Ret)
		w.Line("type %s func(%s)%s", name, r.displayParams(d.Params), r.displayResult(d.Ret.Type))
		w.Line("")
	}

	return w.String()
}

func (r *renderer) displayParams(params []common.ParamDecl) string {
	list := make([]string, 0, len(params))
	for _, p := range params {
		token := r.display(p.Type).Token
		if p.Ref {
			token = "*" + token
		}
		list = append(list, p.Name+" "+token)
	}
	return strings.Join(list, ", ")
}

func (r *renderer) displayResult(t common.TypeRef) string {
	if t.IsVoid() {
		return ""
	}
	return " " + r.display(t).Token
}

// bindingParam is the registered parameter type of p. Callbacks cross as
// uintptr. Carriers and reference types are pointers already; a direct
// value passed by reference becomes one.
func (r *renderer) bindingParam(p common.ParamDecl) string {
	if p.Type.Delegate != "" {
		return "uintptr"
	}
	m := r.binding(p.Type)
	if p.Ref && m.Passing == common.PassDirect {
		return "*" + m.Token
	}
	return m.Token
}

// bindingResult is the registered result type of t. Carriers and vectors
// are returned by value, callbacks as uintptr.
func (r *renderer) bindingResult(t common.TypeRef) string {
	switch {
	case t.IsVoid():
		return ""
	case t.Delegate != "":
		return " uintptr"
	}
	return " " + strings.TrimPrefix(r.binding(t).Token, "*")
}

func (r *renderer) moduleSource(mod *common.Module) string {
	w := common.NewWriter("\t")
	r.header(w)

	for _, fn := range mod.Functions {
		r.function(w, fn)
	}

	w.Line("var (")
	w.Indent()
	for _, fn := range mod.Functions {
		params := make([]string, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, p.Name+" "+r.bindingParam(p))
		}
		w.Line("__%s func(%s)%s", fn.Name, strings.Join(params, ", "), r.bindingResult(fn.Ret.Type))
	}
	w.Dedent()
	w.Line(")")
	w.Line("")

	w.Line("func init() {")
	w.Indent()
	for _, fn := range mod.Functions {
		w.Line("bind(&__%s, %s)", fn.Name, strconv.Quote(fn.InternalName))
	}
	w.Dedent()
	w.Line("}")

	return w.String()
}

// function writes the exported wrapper of fn. Wrapped parameters are
// constructed into carriers that are destroyed by defer; by-reference ones
// are read back after the call.
func (r *renderer) function(w *common.Writer, fn *common.FunctionDecl) {
	name := exported(fn.Name)
	doc(w, name, fn.Description, fn.Deprecated, fn.Params, fn.Ret)
	w.Line("func %s(%s)%s {", name, r.displayParams(fn.Params), r.displayResult(fn.Ret.Type))
	w.Indent()

	taken := common.ParamNames(fn.Params)
	taken["__"+fn.Name] = true
	args := make([]string, 0, len(fn.Params))
	var readBack []string
	for _, p := range fn.Params {
		value := p.Name
		if p.Ref {
			value = "*" + p.Name
		}

		b := r.binding(p.Type)
		switch {
		case p.Type.Delegate != "":
			args = append(args, fmt.Sprintf("purego.NewCallback(%s)", value))
		case b.Passing == common.PassWrapped:
			h := helpersFor(p.Type)
			c := common.UniqueName(taken, "__"+p.Name)
			w.Line("%s := %s(%s)", c, h.construct, value)
			w.Line("defer %s(&%s)", h.destroy, c)
			args = append(args, "&"+c)
			if p.Ref {
				readBack = append(readBack, fmt.Sprintf("*%s = %s(&%s)", p.Name, h.data, c))
			}
		case b.Passing == common.PassReference && !p.Ref:
			args = append(args, "&"+p.Name)
		default:
			args = append(args, p.Name)
		}
	}

	call := fmt.Sprintf("__%s(%s)", fn.Name, strings.Join(args, ", "))
	ret := fn.Ret.Type
	switch {
	case ret.IsVoid():
		w.Line("%s", call)
		for _, l := range readBack {
			w.Line("%s", l)
		}
	case ret.Delegate != "":
		v := common.UniqueName(taken, "__ret")
		w.Line("var %s %s", v, r.display(ret).Token)
		w.Line("purego.RegisterFunc(&%s, %s)", v, call)
		for _, l := range readBack {
			w.Line("%s", l)
		}
		w.Line("return %s", v)
	case r.binding(ret).Passing == common.PassWrapped:
		h := helpersFor(ret)
		v := common.UniqueName(taken, "__ret")
		w.Line("%s := %s", v, call)
		w.Line("defer %s(&%s)", h.destroy, v)
		for _, l := range readBack {
			w.Line("%s", l)
		}
		w.Line("return %s(&%s)", h.data, v)
	case len(readBack) > 0:
		v := common.UniqueName(taken, "__ret")
		w.Line("%s := %s", v, call)
		for _, l := range readBack {
			w.Line("%s", l)
		}
		w.Line("return %s", v)
	default:
		w.Line("return %s", call)
	}

	w.Dedent()
	w.Line("}")
	w.Line("")
}

// helpers are the runtime functions handling the carrier of a wrapped tag.
type helpers struct {
	construct string
	destroy   string
	data      string
}

// helpersFor names the helpers of t, e.g. ConstructString, DestroyString
// and GetStringData for a string. Enum arrays use the generic variants.
func helpersFor(t common.TypeRef) helpers {
	var carrier, data string
	if t.IsArray() {
		elem := elementNames[common.ElementTag(t.Tag)]
		carrier, data = "Vector"+elem, "GetVectorData"+elem
	} else {
		carrier = elementNames[t.Tag]
		data = "Get" + carrier + "Data"
	}

	h := helpers{
		construct: runtimePackage + ".Construct" + carrier,
		destroy:   runtimePackage + ".Destroy" + carrier,
		data:      runtimePackage + "." + data,
	}
	if t.Enum != "" {
		h.construct += "T"
		h.data += "T[" + exported(t.Enum) + "]"
	}
	return h
}

// doc writes a Go doc comment. Parameters are listed when they carry a
// description or a default, the return value when it is not void and
// described.
func doc(w *common.Writer, name, desc, deprecated string, params []common.ParamDecl, ret common.ReturnDecl) {
	var documented []string
	for _, p := range params {
		if p.Description == "" && p.Default == nil {
			continue
		}
		line := "  - " + p.Name
		if p.Description != "" {
			line += ": " + oneLine(p.Description)
		}
		if p.Default != nil {
			line += " (default " + defaultValue(p.Type, *p.Default) + ")"
		}
		documented = append(documented, line)
	}
	returns := !ret.Type.IsVoid() && ret.Description != ""
	if desc == "" && len(documented) == 0 && !returns && deprecated == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(desc), "\n")
	first := name
	if lines[0] != "" {
		first += " - " + strings.TrimSpace(lines[0])
	}
	w.Line("// %s", first)
	for _, l := range lines[1:] {
		if l = strings.TrimSpace(l); l == "" {
			w.Line("//")
			continue
		}
		w.Line("// %s", l)
	}
	if len(documented) > 0 {
		w.Line("//")
		w.Line("// Parameters:")
		for _, l := range documented {
			w.Line("// %s", l)
		}
	}
	if returns {
		w.Line("//")
		w.Line("// Returns: %s", oneLine(ret.Description))
	}
	if deprecated != "" {
		w.Line("//")
		w.Line("// Deprecated: %s", oneLine(deprecated))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func defaultValue(t common.TypeRef, v int64) string {
	if t.Tag == "bool" && t.Enum == "" {
		return strconv.FormatBool(v != 0)
	}
	return strconv.FormatInt(v, 10)
}
