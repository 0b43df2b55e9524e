package gen

import "text/template"

var fileTemplate = template.Must(template.New("union").Parse(`
{{- range .Header}}// {{.}}
{{end}}
{{- if .Header}}
{{end -}}
// Code generated by {{.Tool}}. DO NOT EDIT.
{{- if .Source}}
// source: {{.Source}}
{{- end}}

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

{{if .Comments}}// {{.TagName}} identifies the active case of a {{.Name}}.
{{end}}type {{.TagName}} {{.TagType}}

const (
{{- range .Cases}}
	{{.Const}} {{$.TagName}} = {{.Tag}}
{{- end}}
)

{{if .Comments}}// String returns the case name of the tag.
{{end}}func (t {{.TagName}}) String() string {
	switch t {
{{- range .Cases}}
	case {{.Const}}:
		return "{{.Name}}"
{{- end}}
	default:
		return {{.RT}}.UnknownTag("{{.TagName}}", int(t))
	}
}
{{range .Records}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{end}}
{{if .Comments}}{{range .Doc}}//{{if .}} {{.}}{{end}}
{{end}}{{end}}type {{.Name}}{{.TypeParams}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{range .Funcs}}
{{range .Doc}}//{{if .}} {{.}}{{end}}
{{end}}{{.Decl}}
{{end}}`))
