package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openmaturity/maturity/internal/catalog"
)

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	data := `
categories: [Build, Test]
criteria:
  - {id: ci, category: Build, criteria: CI pipeline, weight: 1.0}
  - {id: docker, category: Build, criteria: Docker, weight: 0.5}
  - {id: unit, category: Test, criteria: Unit tests, weight: 1.0}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestRunCheck(t *testing.T) {
	in := strings.NewReader("y\nn\nyes\n")
	out := &bytes.Buffer{}
	f := &checkFlags{
		catalogPath: writeTestCatalog(t),
		badgePath:   filepath.Join(t.TempDir(), "badge.svg"),
	}
	if err := runCheck(in, out, f); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	got := out.String()
	// 2.0 of 2.5 achieved -> 80.0% -> SILVER
	if !strings.Contains(got, "Your score is 80.0% -> Level: SILVER") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if _, err := os.Stat(f.badgePath); err != nil {
		t.Fatalf("badge not written: %v", err)
	}
}

func TestRunCheckEOFDefaultsToNo(t *testing.T) {
	out := &bytes.Buffer{}
	f := &checkFlags{catalogPath: writeTestCatalog(t), badgePath: ""}
	if err := runCheck(strings.NewReader(""), out, f); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(out.String(), "Your score is 0.0%") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunCheckLegacyPolicy(t *testing.T) {
	out := &bytes.Buffer{}
	f := &checkFlags{catalogPath: writeTestCatalog(t), policyName: "legacy", badgePath: ""}
	if err := runCheck(strings.NewReader("y\ny\ny\n"), out, f); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(out.String(), "Level: Gold") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunCheckUnknownPolicy(t *testing.T) {
	f := &checkFlags{catalogPath: writeTestCatalog(t), policyName: "platinum"}
	if err := runCheck(strings.NewReader(""), &bytes.Buffer{}, f); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestRunCheckMissingCatalogExitCode(t *testing.T) {
	f := &checkFlags{catalogPath: filepath.Join(t.TempDir(), "nope.yaml")}
	err := runCheck(strings.NewReader(""), &bytes.Buffer{}, f)
	if err == nil {
		t.Fatalf("expected config error")
	}
	if _, ok := catalog.AsConfigError(err); !ok {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2 for config error, got %d", exitCode(err))
	}
}

func TestRunCheckSave(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	f := &checkFlags{
		catalogPath: writeTestCatalog(t),
		badgePath:   "",
		save:        true,
		project:     "demo",
		dbPath:      filepath.Join(dir, "maturity.db"),
	}
	if err := runCheck(strings.NewReader("y\ny\ny\n"), out, f); err != nil {
		t.Fatalf("runCheck --save: %v", err)
	}
	if !strings.Contains(out.String(), `saved for project "demo"`) {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	// Saving without a project name is an integrity error (exit code 3).
	f.project = ""
	err := runCheck(strings.NewReader("y\ny\ny\n"), &bytes.Buffer{}, f)
	if err == nil {
		t.Fatalf("expected integrity error without project name")
	}
	if exitCode(err) != 3 {
		t.Fatalf("expected exit code 3, got %d", exitCode(err))
	}
}
