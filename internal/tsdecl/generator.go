// Package tsdecl renders a TypeScript declaration stub (.d.ts) for a plugin.
package tsdecl

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/saffronjam/plugify-bindgen/internal/common"
)

//go:embed templates/*.tmpl
var templates embed.FS

var stubTemplate = template.Must(template.New("stub.d.ts.tmpl").Funcs(template.FuncMap{
	"ToUpper": strings.ToUpper,
}).ParseFS(templates, "templates/stub.d.ts.tmpl"))

type vectorType struct {
	Name       string
	Dim        int
	Components []string
}

var vectorTypes = []vectorType{
	{Name: "Vector2", Dim: 2, Components: []string{"x", "y"}},
	{Name: "Vector3", Dim: 3, Components: []string{"x", "y", "z"}},
	{Name: "Vector4", Dim: 4, Components: []string{"x", "y", "z", "w"}},
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// Generator renders the declaration stub of a resolved model.
type Generator struct {
	Config common.TypeScriptConfig
}

func New(config common.TypeScriptConfig) *Generator {
	return &Generator{Config: config}
}

func (g *Generator) Name() string {
	return "typescript"
}

func (g *Generator) ReservedWords() []string {
	return ReservedWords
}

// Generate renders model into a single <plugin>.d.ts.
func (g *Generator) Generate(model *common.Model) (common.Files, error) {
	r := &renderer{model: model}
	body := r.body()
	if r.err != nil {
		return nil, r.err
	}

	var sb strings.Builder
	err := stubTemplate.Execute(&sb, struct {
		Plugin        string
		Generator     string
		RuntimeModule string
		Vectors       []vectorType
		Body          string
	}{
		Plugin:        model.Plugin,
		Generator:     common.GeneratorName,
		RuntimeModule: g.Config.RuntimeModule,
		Vectors:       vectorTypes,
		Body:          body,
	})
	if err != nil {
		return nil, fmt.Errorf("executing stub template: %w", err)
	}

	return common.Files{
		fileNameReplacer.Replace(model.Plugin) + ".d.ts": sb.String(),
	}, nil
}

type renderer struct {
	model *common.Model
	err   error
}

func (r *renderer) token(t common.TypeRef) string {
	m, err := Types.Resolve(t)
	if err != nil && r.err == nil {
		r.err = err
	}
	return m.Token
}

// returnType folds by-reference outputs into the return value: a single
// output channel is returned as is, several as a tuple.
func (r *renderer) returnType(params []common.ParamDecl, outs []common.TypeRef, ret common.TypeRef) string {
	if !common.HasRefParams(params) {
		return r.token(ret)
	}
	if len(outs) == 1 {
		return r.token(outs[0])
	}
	tokens := make([]string, 0, len(outs))
	for _, t := range outs {
		tokens = append(tokens, r.token(t))
	}
	return "[" + strings.Join(tokens, ", ") + "]"
}

// params renders a parameter list. Parameters from index optional on are
// marked optional.
func (r *renderer) params(params []common.ParamDecl, optional int) string {
	list := make([]string, 0, len(params))
	for i, p := range params {
		sep := ": "
		if i >= optional {
			sep = "?: "
		}
		list = append(list, p.Name+sep+r.token(p.Type))
	}
	return strings.Join(list, ", ")
}

func (r *renderer) body() string {
	w := common.NewWriter("  ")
	w.Indent()

	for _, e := range r.model.Enums {
		w.Line("")
		r.enum(w, e)
	}

	if len(r.model.Aliases) > 0 {
		w.Line("")
	}
	for _, a := range r.model.Aliases {
		if a.Description != "" {
			w.Line("/** %s */", oneLine(a.Description))
		}
		w.Line("export type %s = %s;", a.Name, r.token(common.TypeRef{Tag: a.Tag}))
	}

	for _, mod := range r.model.Modules {
		w.Line("")
		w.Line("// %s", mod.Name)
		for _, d := range mod.Delegates {
			r.delegate(w, d)
		}
		for _, fn := range mod.Functions {
			r.function(w, fn)
		}
	}

	return w.String()
}

func (r *renderer) enum(w *common.Writer, e *common.EnumDecl) {
	if e.Description != "" {
		w.Line("/**")
		w.Line(" * %s", oneLine(e.Description))
		w.Line(" */")
	}
	w.Line("export const enum %s {", e.Name)
	w.Indent()
	for _, v := range e.Values {
		if v.Description != "" {
			w.Line("/** %s */", oneLine(v.Description))
		}
		w.Line("%s = %d,", v.Name, v.Value)
	}
	w.Dedent()
	w.Line("}")
}

func (r *renderer) delegate(w *common.Writer, d *common.DelegateDecl) {
	r.jsdoc(w, d.Description, "", d.Params, len(d.Params), d.Ret)
	ret := r.returnType(d.Params, common.DelegateOutputs(d), d.Ret.Type)
	w.Line("export type %s = (%s) => %s;", d.Name, r.params(d.Params, len(d.Params)), ret)
}

func (r *renderer) function(w *common.Writer, fn *common.FunctionDecl) {
	optional := common.TrailingDefaults(fn.Params)
	r.jsdoc(w, fn.Description, fn.Deprecated, fn.Params, optional, fn.Ret)
	ret := r.returnType(fn.Params, common.Outputs(fn), fn.Ret.Type)
	w.Line("export function %s(%s): %s;", fn.Name, r.params(fn.Params, optional), ret)
}

// jsdoc writes a JSDoc block. Parameters are listed when they carry a
// description or a rendered default, the return value when it is not void
// and described.
func (r *renderer) jsdoc(w *common.Writer, desc, deprecated string, params []common.ParamDecl, optional int, ret common.ReturnDecl) {
	var tags []string
	for i, p := range params {
		name := p.Name
		if i >= optional {
			name = fmt.Sprintf("[%s=%s]", p.Name, defaultValue(p.Type, *p.Default))
		}
		switch {
		case p.Description != "":
			tags = append(tags, fmt.Sprintf("@param {%s} %s - %s", r.token(p.Type), name, oneLine(p.Description)))
		case i >= optional:
			tags = append(tags, fmt.Sprintf("@param {%s} %s", r.token(p.Type), name))
		}
	}
	if !ret.Type.IsVoid() && ret.Description != "" {
		tags = append(tags, fmt.Sprintf("@returns {%s} %s", r.token(ret.Type), oneLine(ret.Description)))
	}
	if deprecated != "" {
		tags = append(tags, "@deprecated "+oneLine(deprecated))
	}
	if desc == "" && len(tags) == 0 {
		return
	}

	w.Line("/**")
	if desc != "" {
		for _, l := range strings.Split(strings.TrimSpace(desc), "\n") {
			w.Line(" * %s", escapeDoc(strings.TrimSpace(l)))
		}
		if len(tags) > 0 {
			w.Line(" *")
		}
	}
	for _, tag := range tags {
		w.Line(" * %s", tag)
	}
	w.Line(" */")
}

func oneLine(s string) string {
	return escapeDoc(strings.Join(strings.Fields(s), " "))
}

// escapeDoc keeps text from closing a /** */ block.
func escapeDoc(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}

func defaultValue(t common.TypeRef, v int64) string {
	if t.Tag == "bool" && t.Enum == "" {
		return strconv.FormatBool(v != 0)
	}
	return strconv.FormatInt(v, 10)
}
