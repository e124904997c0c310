package main

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/devreg/devreg-go/pkg/regspec"
)

const registerImport = `"github.com/devreg/devreg-go/pkg/register"`

var errNoBindings = errors.New("no register declarations found")

// Generate renders the bindings found in a package.
func Generate(src *Source) (string, error) {
	if len(src.Bindings) == 0 {
		return "", errNoBindings
	}

	set := make(map[string]bool)
	for _, b := range src.Bindings {
		if len(b.TypeParams) == 0 {
			set[registerImport] = true
		}
		if b.Err != "" {
			set[`"errors"`] = true
		}
		for _, imp := range b.Imports {
			set[imp] = true
		}
	}

	var sb strings.Builder
	renderTemplate(&sb, "header", headerData{
		Package: src.Package,
		Imports: sortedKeys(set),
	})
	for _, b := range src.Bindings {
		renderTemplate(&sb, "binding", b)
	}
	renderTemplate(&sb, "assertions", newAssertionsData(src.Bindings))
	return sb.String(), nil
}

// GenerateMap renders register types, field accessors, codecs and bindings
// for every register of m.
func GenerateMap(m *regspec.Map, pkg, source string) (string, error) {
	if pkg == "" {
		pkg = m.Package
	}
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	set := map[string]bool{
		`"fmt"`:        true,
		registerImport: true,
	}
	if m.Error != "" {
		set[`"errors"`] = true
	}

	types := make([]registerTypeData, 0, len(m.Registers))
	bindings := make([]Binding, 0, len(m.Registers))
	for i := range m.Registers {
		r := &m.Registers[i]
		if !token.IsIdentifier(r.Name) || !token.IsExported(r.Name) {
			return "", fmt.Errorf("register %q: name must be an exported Go identifier", r.Name)
		}
		access, err := r.Access()
		if err != nil {
			return "", fmt.Errorf("register %s: %w", r.Name, err)
		}
		if r.Bytes() > 1 {
			set[`"encoding/binary"`] = true
		}

		addr := fmt.Sprintf("0x%02X", r.Addr)

		td := registerTypeData{
			Name:        r.Name,
			Description: r.Description,
			Kind:        r.Kind,
			Addr:        addr,
			GoType:      r.GoType(),
			Bytes:       r.Bytes(),
			Reset:       hexLiteral(r.Reset, r.Bytes()),
		}
		for _, f := range r.Fields {
			if f.Reserved {
				continue
			}
			method := goTitleCase(f.Name)
			if !token.IsIdentifier(method) {
				return "", fmt.Errorf("register %s: field %q is not a valid Go name", r.Name, f.Name)
			}
			td.Fields = append(td.Fields, fieldData{
				Method:      method,
				Name:        f.Name,
				Description: f.Description,
				Shift:       f.Offset,
				Mask:        hexLiteral(f.Mask()>>uint(f.Offset), (f.Bits+7)/8),
				Clear:       hexLiteral(f.Mask(), r.Bytes()),
			})
		}
		types = append(types, td)

		bindings = append(bindings, Binding{
			Type:     r.Name,
			Access:   access,
			Addr:     addr,
			AddrType: m.AddressType,
			Err:      m.Error,
		})
	}

	var sb strings.Builder
	renderTemplate(&sb, "header", headerData{
		Source:  source,
		Package: pkg,
		Imports: sortedKeys(set),
	})
	for i := range types {
		renderTemplate(&sb, "registerType", types[i])
		renderTemplate(&sb, "codec", types[i])
		renderTemplate(&sb, "binding", bindings[i])
	}
	renderTemplate(&sb, "assertions", newAssertionsData(bindings))
	return sb.String(), nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
