package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Path != present {
		t.Errorf("expected resolved path %q, got %q", present, results[0].Path)
	}
	if results[0].Detail != "" {
		t.Errorf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}

	if results[2].Available {
		t.Fatal("expected blank command to be unavailable")
	}
	if results[2].Detail != "command not configured" {
		t.Errorf("unexpected detail for blank command: %s", results[2].Detail)
	}
}

func TestConverter(t *testing.T) {
	reqs := Converter("flac", "/opt/lame/bin/lame")
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "flac" {
		t.Errorf("flac command = %q, want %q", reqs[0].Command, "flac")
	}
	if reqs[1].Command != "/opt/lame/bin/lame" {
		t.Errorf("lame command = %q, want %q", reqs[1].Command, "/opt/lame/bin/lame")
	}
}

func TestMissing(t *testing.T) {
	statuses := []Status{
		{Name: "A", Available: true},
		{Name: "B", Available: false, Detail: "binary \"b\" not found"},
	}

	missing := Missing(statuses)
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing status, got %d", len(missing))
	}
	if missing[0].Name != "B" {
		t.Errorf("missing[0].Name = %q, want %q", missing[0].Name, "B")
	}
}
