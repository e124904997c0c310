package register_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// constraintPrelude declares one register per access combination. Each
// case appends the body of use.
const constraintPrelude = `package snippet

import (
	"github.com/devreg/devreg-go/pkg/register"
	"github.com/devreg/devreg-go/pkg/register/async"
)

type Status uint8

func (Status) RegisterAddress() uint8 { return 0x02 }
func (Status) ReadableRegister()      {}

type Command uint8

func (Command) RegisterAddress() uint8 { return 0x03 }
func (Command) WritableRegister()      {}

type Level uint16

func (Level) RegisterAddress() uint8 { return 0x04 }
func (Level) ReadableRegister()      {}
func (Level) WritableRegister()      {}
func (Level) EditableRegister()      {}

type Raw uint8

func (Raw) RegisterAddress() uint8 { return 0x05 }

var (
	dev  register.Interface[uint8]
	adev async.Interface[uint8]
)

func use() {
`

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }

func loadRegisterTypes(t *testing.T) map[string]*types.Package {
	t.Helper()
	if testing.Short() {
		t.Skip("type-checking needs the go command")
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, ".", "./async")
	require.NoError(t, err)

	out := make(map[string]*types.Package, len(pkgs))
	for _, p := range pkgs {
		require.Empty(t, p.Errors, "loading %s", p.PkgPath)
		out[p.PkgPath] = p.Types
	}
	require.Contains(t, out, "github.com/devreg/devreg-go/pkg/register")
	require.Contains(t, out, "github.com/devreg/devreg-go/pkg/register/async")
	return out
}

func typeCheck(t *testing.T, imports map[string]*types.Package, body string) error {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "snippet.go", constraintPrelude+body+"\n}\n", 0)
	require.NoError(t, err)

	conf := types.Config{
		Importer: importerFunc(func(path string) (*types.Package, error) {
			if p, ok := imports[path]; ok {
				return p, nil
			}
			return nil, fmt.Errorf("unexpected import %q", path)
		}),
	}
	_, err = conf.Check("snippet", fset, []*ast.File{f}, nil)
	return err
}

func TestPermittedOperationsCompile(t *testing.T) {
	imports := loadRegisterTypes(t)

	tests := []struct {
		name string
		body string
	}{
		{"read readable", `_, _ = register.Read[Status](dev)`},
		{"write writable", `_ = register.Write(dev, Command(1))`},
		{"edit editable", `_ = register.Edit(dev, func(l *Level) { *l++ })`},
		{"read write edit", `_, _ = register.Read[Level](dev); _ = register.Write(dev, Level(1))`},
		{"async read", `_, _ = async.Read[Status](nil, adev)`},
		{"async write", `_ = async.Write(nil, adev, Command(1))`},
		{"async edit", `_ = async.Edit(nil, adev, func(l *Level) { *l++ })`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, typeCheck(t, imports, tt.body))
		})
	}
}

func TestMissingPermissionDoesNotCompile(t *testing.T) {
	imports := loadRegisterTypes(t)

	tests := []struct {
		name   string
		body   string
		marker string
	}{
		{"write read-only", `_ = register.Write(dev, Status(0))`, "WritableRegister"},
		{"read write-only", `_, _ = register.Read[Command](dev)`, "ReadableRegister"},
		{"edit read-only", `_ = register.Edit(dev, func(*Status) {})`, "EditableRegister"},
		{"edit write-only", `_ = register.Edit(dev, func(*Command) {})`, "EditableRegister"},
		{"read untagged", `_, _ = register.Read[Raw](dev)`, "ReadableRegister"},
		{"write untagged", `_ = register.Write(dev, Raw(0))`, "WritableRegister"},
		{"async write read-only", `_ = async.Write(nil, adev, Status(0))`, "WritableRegister"},
		{"async read write-only", `_, _ = async.Read[Command](nil, adev)`, "ReadableRegister"},
		{"async edit read-only", `_ = async.Edit(nil, adev, func(*Status) {})`, "EditableRegister"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := typeCheck(t, imports, tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "missing method "+tt.marker)
		})
	}
}
