// Command regbind generates register bindings.
//
// In source mode it scans a package for types carrying a directive such as
//
//	//register:rw addr=0x01 ty=Address err=BusError
//	type Config uint16
//
// and writes RegisterAddress, the permission markers and, when err is given,
// AsRegisterError for each of them. In map mode it reads a YAML register map
// and generates the register types themselves.
//
//	//go:generate go run github.com/devreg/devreg-go/cmd/regbind -dir .
//	//go:generate go run github.com/devreg/devreg-go/cmd/regbind -map registers.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devreg/devreg-go/pkg/regspec"
	"github.com/devreg/devreg-go/pkg/version"
	"golang.org/x/tools/imports"
)

func main() {
	dir := flag.String("dir", "", "Package directory to scan for //register: directives")
	mapPath := flag.String("map", "", "Register map YAML to generate register types from")
	pkgName := flag.String("pkg", "", "Package name for -map output (default: the map's package)")
	output := flag.String("output", "", "Output file (default: <pkg>"+genSuffix+" next to the input)")
	showVersion := flag.Bool("version", false, "Print the register map format version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("regbind, register map format %s\n", version.Current)
		return
	}

	if (*dir == "") == (*mapPath == "") {
		fmt.Fprintln(os.Stderr, "Usage: regbind -dir <package dir> [-output <file>]")
		fmt.Fprintln(os.Stderr, "       regbind -map <registers.yaml> [-pkg <name>] [-output <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var err error
	if *dir != "" {
		err = runSource(*dir, *output)
	} else {
		err = runMap(*mapPath, *pkgName, *output)
	}
	if err != nil {
		var diags Diagnostics
		if errors.As(err, &diags) {
			fmt.Fprintln(os.Stderr, diags.Error())
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runSource(dir, output string) error {
	src, err := ParseDir(dir)
	if err != nil {
		return err
	}
	if output == "" {
		output = filepath.Join(dir, src.Package+genSuffix)
	}

	if len(src.Bindings) == 0 {
		// Drop a stale file so removed declarations do not linger.
		if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "regbind: %s: %v\n", dir, errNoBindings)
		return nil
	}

	code, err := Generate(src)
	if err != nil {
		return err
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s (%d registers)\n", output, len(src.Bindings))
	return nil
}

func runMap(mapPath, pkg, output string) error {
	m, err := regspec.LoadMap(mapPath)
	if err != nil {
		return err
	}
	if pkg == "" {
		pkg = m.Package
	}
	if pkg == "" {
		return fmt.Errorf("%s: no package name; set package in the map or pass -pkg", mapPath)
	}
	if output == "" {
		output = filepath.Join(filepath.Dir(mapPath), pkg+genSuffix)
	}

	code, err := GenerateMap(m, pkg, filepath.Base(mapPath))
	if err != nil {
		return fmt.Errorf("generating %s: %w", mapPath, err)
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s (%d registers)\n", output, len(m.Registers))
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
