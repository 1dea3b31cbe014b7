// Package dlang renders D bindings for a plugin: one module per group and a
// shared module holding the enums and delegate aliases.
package dlang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saffronjam/plugify-bindgen/internal/common"
)

const typesModule = "types"

// Generator renders the D bindings of a resolved model.
type Generator struct {
	Config common.DLangConfig
}

func New(config common.DLangConfig) *Generator {
	return &Generator{Config: config}
}

func (g *Generator) Name() string {
	return "dlang"
}

func (g *Generator) ReservedWords() []string {
	return ReservedWords
}

// Generate renders model into <prefix>/<plugin>/types.d and one
// <prefix>/<plugin>/<group>.d per module.
func (g *Generator) Generate(model *common.Model) (common.Files, error) {
	r := &renderer{
		config:   g.Config,
		model:    model,
		reserved: common.NewReservedWords(ReservedWords),
	}

	r.plugin = common.PluginName(model.Plugin)
	if r.plugin == "" {
		r.plugin = "plugin"
	}
	r.plugin = r.reserved.Sanitize(r.plugin)

	files := common.Files{}
	files[r.path(typesModule)] = r.typesFile()
	for _, mod := range model.Modules {
		ident := r.moduleIdent(mod)
		files[r.path(ident)] = r.moduleFile(ident, mod)
	}

	if r.err != nil {
		return nil, r.err
	}
	return files, nil
}

type renderer struct {
	config   common.DLangConfig
	model    *common.Model
	reserved common.ReservedWords
	plugin   string

	err error // first resolution error
}

// moduleIdent turns a group into a D module identifier that cannot clash
// with a keyword or with the shared types module.
func (r *renderer) moduleIdent(mod *common.Module) string {
	ident := r.reserved.Sanitize(mod.Name)
	if ident == typesModule {
		ident += "_"
	}
	return ident
}

func (r *renderer) moduleName(ident string) string {
	parts := []string{r.plugin, ident}
	if r.config.ModulePrefix != "" {
		parts = append([]string{r.config.ModulePrefix}, parts...)
	}
	return strings.Join(parts, ".")
}

func (r *renderer) path(ident string) string {
	return strings.ReplaceAll(r.moduleName(ident), ".", "/") + ".d"
}

func (r *renderer) display(t common.TypeRef) common.Mapping {
	return r.resolve(&DisplayTypes, t)
}

func (r *renderer) binding(t common.TypeRef) common.Mapping {
	return r.resolve(&BindingTypes, t)
}

func (r *renderer) resolve(table *common.TypeTable, t common.TypeRef) common.Mapping {
	m, err := table.Resolve(t)
	if err != nil && r.err == nil {
		r.err = err
	}
	return m
}

// bindingParam qualifies the binding token of p: by-reference parameters are
// passed as ref, all others are const.
func (r *renderer) bindingParam(p common.ParamDecl) string {
	m := r.binding(p.Type)
	switch {
	case p.Ref && m.Passing == common.PassDirect:
		return "ref " + m.Token
	case p.Ref:
		return m.Token
	default:
		return "const " + m.Token
	}
}

func (r *renderer) bindingReturn(t common.TypeRef) string {
	return r.binding(t).Carrier()
}

func (r *renderer) bindingParams(params []common.ParamDecl) string {
	list := make([]string, 0, len(params))
	for _, p := range params {
		list = append(list, r.bindingParam(p)+" "+p.Name)
	}
	return strings.Join(list, ", ")
}

func (r *renderer) header(w *common.Writer, ident string) {
	w.Line("// Generated from %s by %s. Do not edit.", r.model.Plugin, common.GeneratorName)
	w.Line("module %s;", r.moduleName(ident))
	w.Line("")
	w.Line("import %s;", r.config.RuntimeImport)
	w.Line("public import %s;", r.config.PublicImport)
}

func (r *renderer) typesFile() string {
	w := common.NewWriter("\t")
	r.header(w, typesModule)
	w.Line("")

	for _, e := range r.model.Enums {
		r.enum(w, e)
	}

	for _, a := range r.model.Aliases {
		if a.Description != "" {
			w.Line("/// %s", oneLine(a.Description))
		}
		w.Line("alias %s = %s;", a.Name, r.display(common.TypeRef{Tag: a.Tag}).Token)
		w.Line("")
	}

	for _, mod := range r.model.Modules {
		for _, d := range mod.Delegates {
			r.delegate(w, d)
		}
	}

	return w.String()
}

func (r *renderer) enum(w *common.Writer, e *common.EnumDecl) {
	if e.Description != "" {
		w.Line("/// %s", oneLine(e.Description))
	}
	w.Line("enum %s : %s {", e.Name, r.display(common.TypeRef{Tag: e.Type}).Token)
	w.Indent()
	for _, v := range e.Values {
		line := fmt.Sprintf("%s = %s,", v.Name, groupDigits(v.Value))
		if v.Description != "" {
			line += " /// " + oneLine(v.Description)
		}
		w.Line("%s", line)
	}
	w.Dedent()
	w.Line("}")
	w.Line("")
}

func (r *renderer) delegate(w *common.Writer, d *common.DelegateDecl) {
	ddoc(w, d.Description, d.Params, d.Ret)
	w.Line("alias %s = extern (C) %s function(%s);", d.Name, r.bindingReturn(d.Ret.Type), r.bindingParams(d.Params))
	w.Line("")
}

func (r *renderer) moduleFile(ident string, mod *common.Module) string {
	w := common.NewWriter("\t")
	r.header(w, ident)
	w.Line("public import %s;", r.moduleName(typesModule))
	w.Line("")

	for _, fn := range mod.Functions {
		r.function(w, fn)
	}

	w.Line("private {")
	w.Indent()
	for _, fn := range mod.Functions {
		w.Line("alias _%s = extern (C) %s function(%s);", fn.Name, r.bindingReturn(fn.Ret.Type), r.bindingParams(fn.Params))
		w.Line("__gshared _%s __%s;", fn.Name, fn.Name)
	}
	w.Dedent()
	w.Line("}")
	w.Line("")

	w.Line("shared static this() {")
	w.Indent()
	for _, fn := range mod.Functions {
		w.Line("__%s = cast(_%s) %s(%s);", fn.Name, fn.Name, r.config.Resolver, strconv.Quote(fn.InternalName))
		w.Line("if (__%s is null) throw new Error(%s);", fn.Name, strconv.Quote("unresolved plugin method "+fn.InternalName))
	}
	w.Dedent()
	w.Line("}")

	return w.String()
}

// function writes the public wrapper of fn. Wrapped parameters are copied
// into their carriers before the call; by-reference ones are written back
// by scope(exit), which also runs when the call throws.
func (r *renderer) function(w *common.Writer, fn *common.FunctionDecl) {
	ddoc(w, fn.Description, fn.Params, fn.Ret)
	if fn.Deprecated != "" {
		w.Line("deprecated(%s)", strconv.Quote(fn.Deprecated))
	}

	first := common.TrailingDefaults(fn.Params)
	params := make([]string, 0, len(fn.Params))
	for i, p := range fn.Params {
		token := r.display(p.Type).Token
		param := token + " " + p.Name
		if p.Ref {
			param = "ref " + param
		}
		if i >= first {
			param += " = " + defaultValue(p.Type, token, *p.Default)
		}
		params = append(params, param)
	}
	w.Line("%s %s(%s) {", r.display(fn.Ret.Type).Token, fn.Name, strings.Join(params, ", "))
	w.Indent()

	args := make([]string, 0, len(fn.Params))
	taken := common.ParamNames(fn.Params)
	glue := false
	for i, p := range fn.Params {
		b := r.binding(p.Type)
		if b.Passing != common.PassWrapped {
			args = append(args, p.Name)
			continue
		}
		v := common.UniqueName(taken, fmt.Sprintf("_v%d", i))
		w.Line("%s %s = %s(%s);", b.Carrier(), v, b.Carrier(), p.Name)
		if p.Ref {
			w.Line("scope(exit) %s = %s.value;", p.Name, v)
		}
		args = append(args, v)
		glue = true
	}
	if glue {
		w.Line("")
	}

	call := fmt.Sprintf("__%s(%s)", fn.Name, strings.Join(args, ", "))
	switch {
	case fn.Ret.Type.IsVoid():
		w.Line("%s;", call)
	case r.binding(fn.Ret.Type).Passing == common.PassWrapped:
		w.Line("return %s.value;", call)
	default:
		w.Line("return %s;", call)
	}

	w.Dedent()
	w.Line("}")
	w.Line("")
}

// ddoc writes a documentation block. Parameters are listed when they carry
// a description, the return value when it is not void and described.
func ddoc(w *common.Writer, desc string, params []common.ParamDecl, ret common.ReturnDecl) {
	var documented []common.ParamDecl
	for _, p := range params {
		if p.Description != "" {
			documented = append(documented, p)
		}
	}
	returns := !ret.Type.IsVoid() && ret.Description != ""
	if desc == "" && len(documented) == 0 && !returns {
		return
	}

	w.Line("/++")
	w.Indent()
	if desc != "" {
		for _, l := range strings.Split(strings.TrimSpace(desc), "\n") {
			w.Line("%s", escapeDoc(strings.TrimSpace(l)))
		}
		if len(documented) > 0 || returns {
			w.Line("")
		}
	}
	if len(documented) > 0 {
		w.Line("Params:")
		w.Indent()
		for _, p := range documented {
			w.Line("%s = %s", p.Name, oneLine(p.Description))
		}
		w.Dedent()
	}
	if returns {
		w.Line("Returns:")
		w.Indent()
		w.Line("%s", oneLine(ret.Description))
		w.Dedent()
	}
	w.Dedent()
	w.Line("+/")
}

func oneLine(s string) string {
	return escapeDoc(strings.Join(strings.Fields(s), " "))
}

var docEscaper = strings.NewReplacer("+/", "+ /", "/+", "/ +")

// escapeDoc breaks up the delimiters of nesting comments, so text cannot
// open or close a /++ +/ block.
func escapeDoc(s string) string {
	for strings.Contains(s, "+/") || strings.Contains(s, "/+") {
		s = docEscaper.Replace(s)
	}
	return s
}

// defaultValue renders an integer default for a parameter of type t whose
// display token is token.
func defaultValue(t common.TypeRef, token string, v int64) string {
	switch {
	case t.Enum != "" || t.Tag == "char8" || t.Tag == "char16":
		return fmt.Sprintf("cast(%s) %d", token, v)
	case t.Tag == "bool":
		return strconv.FormatBool(v != 0)
	default:
		return strconv.FormatInt(v, 10)
	}
}

// groupDigits formats v with "_" between groups of three digits,
// e.g. 1000000 -> 1_000_000.
func groupDigits(v int64) string {
	s := strconv.FormatInt(v, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
