package text

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs is sprig plus the render helpers above.
var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["wrap"] = Wrap
	fm["title"] = Title
	fm["number"] = Number
	fm["indent2"] = func(s string) string { return Indent(s, 2) }
	return fm
}()

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	return execute(tmpl, data)
}

func mustParse(name, tmplStr string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(tmplStr))
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
