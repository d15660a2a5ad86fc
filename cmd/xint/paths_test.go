package main

import (
	"path/filepath"
	"testing"
)

func TestDataRootFromConfig_Default(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XINT_DATA_DIR", "")

	root, err := dataRootFromConfig(&Config{ProjectID: "demo"}, "")
	if err != nil {
		t.Fatalf("dataRootFromConfig() error = %v", err)
	}

	want := filepath.Join(home, ".xint", "data")
	if root != want {
		t.Fatalf("dataRootFromConfig() = %q, want %q", root, want)
	}
}

func TestDataRootFromConfig_EnvOverride(t *testing.T) {
	t.Setenv("XINT_DATA_DIR", "/tmp/custom-xint")

	root, err := dataRootFromConfig(&Config{ProjectID: "demo"}, "")
	if err != nil {
		t.Fatalf("dataRootFromConfig() error = %v", err)
	}
	if root != "/tmp/custom-xint" {
		t.Fatalf("dataRootFromConfig() = %q, want %q", root, "/tmp/custom-xint")
	}
}

func TestDataRootFromConfig_RelativeDataDir(t *testing.T) {
	t.Setenv("XINT_DATA_DIR", "")

	repo := t.TempDir()
	cfg := &Config{
		ProjectID: "demo",
		DataDir:   "./.xint/db",
	}

	cfgPath := filepath.Join(repo, ".xint", "project.yaml")
	root, err := dataRootFromConfig(cfg, cfgPath)
	if err != nil {
		t.Fatalf("dataRootFromConfig() error = %v", err)
	}

	want := filepath.Join(repo, ".xint", ".xint", "db")
	if root != want {
		t.Fatalf("dataRootFromConfig() = %q, want %q", root, want)
	}
}

func TestProjectDataDir_AppendsProjectID(t *testing.T) {
	t.Setenv("XINT_DATA_DIR", "/tmp/xint-root")

	dir, err := projectDataDir(&Config{ProjectID: "my-project"}, "")
	if err != nil {
		t.Fatalf("projectDataDir() error = %v", err)
	}
	if dir != "/tmp/xint-root/my-project" {
		t.Fatalf("projectDataDir() = %q, want %q", dir, "/tmp/xint-root/my-project")
	}
}

func TestCostsPath_ExplicitConfig(t *testing.T) {
	cfg := &Config{
		ProjectID: "demo",
		Budget:    BudgetConfig{CostsPath: "/var/lib/xint/costs.json"},
	}

	path, err := costsPath(cfg, "")
	if err != nil {
		t.Fatalf("costsPath() error = %v", err)
	}
	if path != "/var/lib/xint/costs.json" {
		t.Fatalf("costsPath() = %q", path)
	}
}

func TestReliabilityPath_DefaultUnderDataDir(t *testing.T) {
	t.Setenv("XINT_DATA_DIR", "/tmp/xint-root")

	path, err := reliabilityPath(&Config{ProjectID: "demo"}, "")
	if err != nil {
		t.Fatalf("reliabilityPath() error = %v", err)
	}
	want := filepath.Join("/tmp/xint-root", "demo", "reliability.jsonl")
	if path != want {
		t.Fatalf("reliabilityPath() = %q, want %q", path, want)
	}
}
