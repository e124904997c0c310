package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRunSourceDiagnosticsWriteNothing(t *testing.T) {
	dir := t.TempDir()
	src := "package dev\n\n//register:rw addr=0x01+\ntype A uint8\n"
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	err := runSource(dir, "")
	var diags Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("runSource error = %v, want Diagnostics", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dev"+genSuffix)); !os.IsNotExist(err) {
		t.Errorf("output written despite diagnostics (stat err = %v)", err)
	}
}

func TestRunSourceRemovesStaleOutput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package dev\n\ntype A uint8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, "dev"+genSuffix)
	if err := os.WriteFile(stale, []byte("package dev\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runSource(dir, ""); err != nil {
		t.Fatalf("runSource failed: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale output not removed (stat err = %v)", err)
	}
}

func TestRunMapNeedsPackage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regs.yaml")
	if err := os.WriteFile(path, []byte("registers:\n  - {name: A, addr: 1, access: ro}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runMap(path, "", ""); err == nil {
		t.Error("runMap should fail without a package name")
	}
}
