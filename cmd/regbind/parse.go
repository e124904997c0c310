package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/devreg/devreg-go/pkg/register"
)

const (
	directivePrefix = "//register:"

	// DefaultAddressType is the address type of a binding without ty.
	DefaultAddressType = "uint8"

	// genSuffix names the files this tool writes; they are never scanned.
	genSuffix = "_register_gen.go"
)

// Binding is one register declaration found in source.
type Binding struct {
	Pos        token.Position
	Type       string
	TypeParams []string
	Access     register.Access
	Addr       string
	AddrType   string
	Err        string

	// Imports lists the import specs the attribute expressions refer to.
	Imports []string
}

// Recv returns the receiver type, including type parameters.
func (b Binding) Recv() string {
	if len(b.TypeParams) == 0 {
		return b.Type
	}
	return b.Type + "[" + strings.Join(b.TypeParams, ", ") + "]"
}

// Diagnostic reports a declaration the generator cannot accept.
type Diagnostic struct {
	Pos    token.Position
	Type   string
	Key    string
	Reason string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d: register %s: attribute %q: %s", d.Pos.Filename, d.Pos.Line, d.Type, d.Key, d.Reason)
}

// Diagnostics collects every problem found in a package.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Source is the result of scanning a package.
type Source struct {
	Package  string
	Bindings []Binding
}

// ParseDir scans the non-test Go files of dir for register directives.
// If any directive is rejected, the returned error is a Diagnostics.
func ParseDir(dir string) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	src := &Source{}
	var diags Diagnostics
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, genSuffix) {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if src.Package == "" {
			src.Package = f.Name.Name
		} else if f.Name.Name != src.Package {
			return nil, fmt.Errorf("%s: package %s, expected %s", name, f.Name.Name, src.Package)
		}

		bindings, ds := collect(fset, f)
		src.Bindings = append(src.Bindings, bindings...)
		diags = append(diags, ds...)
	}
	if len(diags) > 0 {
		return nil, diags
	}
	return src, nil
}

// collect returns the bindings declared in one file.
func collect(fset *token.FileSet, f *ast.File) ([]Binding, Diagnostics) {
	imports := fileImports(f)

	var out []Binding
	var diags Diagnostics
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			b, ds := bindingFor(fset, ts, doc, imports)
			diags = append(diags, ds...)
			if b != nil && len(ds) == 0 {
				out = append(out, *b)
			}
		}
	}
	return out, diags
}

func bindingFor(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup, imports map[string]string) (*Binding, Diagnostics) {
	if doc == nil {
		return nil, nil
	}

	var b *Binding
	var diags Diagnostics
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		pos := fset.Position(c.Slash)
		fail := func(key, format string, args ...any) {
			diags = append(diags, &Diagnostic{Pos: pos, Type: ts.Name.Name, Key: key, Reason: fmt.Sprintf(format, args...)})
		}
		if b != nil {
			fail("kind", "more than one %s directive", strings.TrimSuffix(directivePrefix, ":"))
			continue
		}
		if ts.Assign.IsValid() {
			fail("kind", "cannot bind a type alias")
			continue
		}

		kind, rest := strings.TrimPrefix(c.Text, directivePrefix), ""
		if i := strings.IndexAny(kind, " \t"); i >= 0 {
			kind, rest = kind[:i], kind[i:]
		}
		access, err := parseKind(kind)
		if err != nil {
			fail("kind", "%v", err)
			continue
		}

		b = &Binding{
			Pos:        pos,
			Type:       ts.Name.Name,
			TypeParams: typeParams(ts),
			Access:     access,
			AddrType:   DefaultAddressType,
		}

		attrs, err := splitAttrs(rest)
		if err != nil {
			var ae *attrError
			if errors.As(err, &ae) {
				fail(ae.key, "%s", ae.reason)
			}
			continue
		}

		var exprs []ast.Expr
		seen := make(map[string]bool)
		for _, a := range attrs {
			if seen[a.key] {
				fail(a.key, "given more than once")
				continue
			}
			seen[a.key] = true

			var check func(ast.Expr) bool
			var want string
			switch a.key {
			case "addr":
				check, want = isAddr, "a constant literal, a constant path or a conversion of one"
			case "ty":
				check, want = isPath, "a type name"
			case "err":
				check, want = isErrType, "an error type name"
			default:
				fail(a.key, "unknown attribute (want addr, ty or err)")
				continue
			}

			if a.value == "" {
				fail(a.key, "missing value")
				continue
			}
			e, err := parser.ParseExpr(a.value)
			if err != nil {
				fail(a.key, "cannot parse %q", a.value)
				continue
			}
			if !check(e) {
				fail(a.key, "%q is not %s", a.value, want)
				continue
			}
			exprs = append(exprs, e)

			switch a.key {
			case "addr":
				b.Addr = a.value
			case "ty":
				b.AddrType = a.value
			case "err":
				b.Err = a.value
			}
		}
		if !seen["addr"] {
			fail("addr", "required attribute missing")
		}
		b.Imports = neededImports(exprs, imports)
	}
	return b, diags
}

func parseKind(kind string) (register.Access, error) {
	if kind == "" {
		return 0, errors.New("missing register kind (want ro, wo, eo, re or rw)")
	}
	return register.ParseAccess(kind)
}

func typeParams(ts *ast.TypeSpec) []string {
	if ts.TypeParams == nil {
		return nil
	}
	var names []string
	for _, field := range ts.TypeParams.List {
		for _, n := range field.Names {
			names = append(names, n.Name)
		}
	}
	return names
}

type attr struct {
	key   string
	value string
}

type attrError struct {
	key    string
	reason string
}

func (e *attrError) Error() string { return e.key + ": " + e.reason }

// splitAttrs splits `addr=0x01 ty="pkg.Addr"` into key/value pairs.
// Values may be double-quoted Go strings.
func splitAttrs(s string) ([]attr, error) {
	var out []attr
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return out, nil
		}

		eq := strings.IndexByte(s, '=')
		sp := strings.IndexAny(s, " \t")
		if eq < 0 || (sp >= 0 && sp < eq) {
			word := s
			if sp >= 0 {
				word = s[:sp]
			}
			return nil, &attrError{key: word, reason: "expected key=value"}
		}
		key := s[:eq]
		s = s[eq+1:]

		var value string
		if strings.HasPrefix(s, `"`) {
			q, err := strconv.QuotedPrefix(s)
			if err != nil {
				return nil, &attrError{key: key, reason: "unterminated quoted value"}
			}
			value, _ = strconv.Unquote(q)
			s = s[len(q):]
		} else {
			end := strings.IndexAny(s, " \t")
			if end < 0 {
				end = len(s)
			}
			value = s[:end]
			s = s[end:]
		}
		out = append(out, attr{key: key, value: value})
	}
}

// isPath accepts Name and pkg.Name.
func isPath(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name != "_"
	case *ast.SelectorExpr:
		return isPath(e.X)
	default:
		return false
	}
}

func isAddr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.BasicLit:
		return e.Kind == token.INT || e.Kind == token.CHAR
	case *ast.ParenExpr:
		return isAddr(e.X)
	case *ast.CallExpr:
		return len(e.Args) == 1 && !e.Ellipsis.IsValid() && isPath(e.Fun) && isAddr(e.Args[0])
	default:
		return isPath(e)
	}
}

func isErrType(e ast.Expr) bool {
	if star, ok := e.(*ast.StarExpr); ok {
		return isPath(star.X)
	}
	return isPath(e)
}

// fileImports maps the local name of each import to its spec.
func fileImports(f *ast.File) map[string]string {
	m := make(map[string]string)
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := assumedName(p)
		spec := imp.Path.Value
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				continue
			}
			name = imp.Name.Name
			spec = name + " " + imp.Path.Value
		}
		m[name] = spec
	}
	return m
}

// assumedName guesses a package name from its import path.
func assumedName(p string) string {
	base := path.Base(p)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(p))
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexAny(base, ".-"); i >= 0 {
		base = base[:i]
	}
	return base
}

// neededImports returns the import specs referenced by the root of every
// selector in exprs.
func neededImports(exprs []ast.Expr, imports map[string]string) []string {
	set := make(map[string]bool)
	for _, e := range exprs {
		ast.Inspect(e, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			root := sel.X
			for {
				inner, ok := root.(*ast.SelectorExpr)
				if !ok {
					break
				}
				root = inner.X
			}
			if id, ok := root.(*ast.Ident); ok {
				if spec, ok := imports[id.Name]; ok {
					set[spec] = true
				}
			}
			return false
		})
	}

	out := make([]string, 0, len(set))
	for spec := range set {
		out = append(out, spec)
	}
	sort.Strings(out)
	return out
}
