package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"hex":        hexLiteral,
	"firstLower": firstLower,
	"title":      func(s string) string { return strings.ToUpper(s[:1]) + s[1:] },
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl +
		bindingTmpl +
		assertionsTmpl +
		registerTypeTmpl +
		codecTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template data types ---

type headerData struct {
	Source  string
	Package string
	Imports []string
}

// registerTypeData describes a register type emitted from a map.
type registerTypeData struct {
	Name        string
	Description string
	Kind        string
	Addr        string
	GoType      string
	Bytes       int
	Reset       string
	Fields      []fieldData
}

type assertionsData struct {
	Bindings []Binding
	ErrTypes []string
}

func newAssertionsData(bindings []Binding) assertionsData {
	d := assertionsData{Bindings: bindings}
	seen := make(map[string]bool)
	for _, b := range bindings {
		if b.Err != "" && !seen[b.Err] {
			seen[b.Err] = true
			d.ErrTypes = append(d.ErrTypes, b.Err)
		}
	}
	return d
}

type fieldData struct {
	Method      string
	Name        string
	Description string
	Shift       int
	Mask        string // unshifted
	Clear       string // shifted, in register position
}

// --- Template definitions ---

const headerTmpl = `{{define "header"}}// Code generated by regbind. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{end}}
{{end}}`

const bindingTmpl = `{{define "binding"}}
// RegisterAddress returns the address of {{.Type}}.
func ({{.Recv}}) RegisterAddress() {{.AddrType}} { return {{.Addr}} }
{{- if .Access.CanRead}}

func ({{.Recv}}) ReadableRegister() {}
{{- end}}
{{- if .Access.CanWrite}}

func ({{.Recv}}) WritableRegister() {}
{{- end}}
{{- if .Access.CanEdit}}

func ({{.Recv}}) EditableRegister() {}
{{- end}}
{{- if .Err}}

// AsRegisterError reports whether err carries a {{.Err}} and returns it.
func ({{.Recv}}) AsRegisterError(err error) ({{.Err}}, bool) {
	var target {{.Err}}
	ok := errors.As(err, &target)
	return target, ok
}
{{- end}}
{{end}}`

const assertionsTmpl = `{{define "assertions"}}
{{- if .Bindings}}
// Compile-time checks of the declared bindings.
var (
{{- range .Bindings}}
{{- if not .TypeParams}}
{{- if .Access.CanRead}}
	_ register.Readable[{{.AddrType}}] = (*{{.Type}})(nil)
{{- end}}
{{- if .Access.CanWrite}}
	_ register.Writable[{{.AddrType}}] = (*{{.Type}})(nil)
{{- end}}
{{- if .Access.CanEdit}}
	_ register.Editable[{{.AddrType}}] = (*{{.Type}})(nil)
{{- end}}
{{- end}}
{{- end}}
{{- range .ErrTypes}}
	_ error = *new({{.}})
{{- end}}
)
{{- end}}
{{end}}`

const registerTypeTmpl = `{{define "registerType"}}
{{- if .Description}}
// {{.Name}} represents {{firstLower .Description}}.
//
// Register {{.Addr}}, access {{.Kind}}.
{{- else}}
// {{.Name}} is the register at {{.Addr}}, access {{.Kind}}.
{{- end}}
type {{.Name}} {{.GoType}}

// {{.Name}}Reset is the value of {{.Name}} after reset.
const {{.Name}}Reset {{.Name}} = {{.Reset}}
{{- range .Fields}}

// {{.Method}} returns the {{.Name}} field{{if .Description}}: {{firstLower .Description}}{{end}}.
func (r {{$.Name}}) {{.Method}}() {{$.GoType}} { return {{$.GoType}}(r>>{{.Shift}}) & {{.Mask}} }

// With{{.Method}} returns r with the {{.Name}} field set to v.
func (r {{$.Name}}) With{{.Method}}(v {{$.GoType}}) {{$.Name}} {
	return r&^{{.Clear}} | {{$.Name}}(v&{{.Mask}})<<{{.Shift}}
}
{{- end}}
{{end}}`

const codecTmpl = `{{define "codec"}}
// MarshalBinary encodes {{.Name}} big-endian.
func (r {{.Name}}) MarshalBinary() ([]byte, error) {
{{- if eq .Bytes 1}}
	return []byte{byte(r)}, nil
{{- else}}
	return binary.BigEndian.Append{{title .GoType}}(nil, {{.GoType}}(r)), nil
{{- end}}
}

// UnmarshalBinary decodes {{.Name}} from its big-endian encoding.
func (r *{{.Name}}) UnmarshalBinary(data []byte) error {
	if len(data) != {{.Bytes}} {
		return fmt.Errorf("{{.Name}}: want {{.Bytes}} bytes, got %d", len(data))
	}
{{- if eq .Bytes 1}}
	*r = {{.Name}}(data[0])
{{- else}}
	*r = {{.Name}}(binary.BigEndian.{{title .GoType}}(data))
{{- end}}
	return nil
}
{{end}}`

// hexLiteral formats v as a hex literal padded to n bytes.
func hexLiteral(v uint64, n int) string {
	return fmt.Sprintf("0x%0*X", n*2, v)
}

func firstLower(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// goTitleCase converts "rate_limit" and "rate-limit" to "RateLimit".
func goTitleCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
