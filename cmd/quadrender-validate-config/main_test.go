package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWithoutConfigUsesDefaults(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"quadrender-validate-config"}, &out); code != 0 {
		t.Fatalf("exit code %d, output %q", code, out.String())
	}
	for _, want := range []string{"Config valid!", "800x800", "built-in", "VERTEX", "gl_Position"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestRunWithRepositoryConfig(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"quadrender-validate-config", "../../quadrender.yaml"}, &out); code != 0 {
		t.Fatalf("exit code %d, output %q", code, out.String())
	}
	if !strings.Contains(out.String(), "FRAGMENT") {
		t.Errorf("shader sections missing:\n%s", out.String())
	}
}

func TestRunMissingShader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quadrender.yaml")
	if err := os.WriteFile(path, []byte("shader:\n  path: missing.shader\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if code := run([]string{"quadrender-validate-config", path}, &out); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "Shader invalid") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunTooManyArgs(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"quadrender-validate-config", "a.yaml", "b.yaml"}, &out); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
