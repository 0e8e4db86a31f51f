package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Server.Addr != ":8080" {
		t.Fatalf("addr = %q, want :8080", c.Server.Addr)
	}
	if c.Cache.Backend != "postgres" {
		t.Fatalf("cache backend = %q, want postgres", c.Cache.Backend)
	}
	if c.Solver.DefaultTimeLimitSeconds != 30 {
		t.Fatalf("time limit = %g, want 30", c.Solver.DefaultTimeLimitSeconds)
	}
}

func TestLoadYAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "server:\n  addr: \":9999\"\nsolver:\n  max_neighborhoods: 7\n"
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROUTE_CONFIG", path)
	t.Setenv("ROUTE_HTTP_ADDR", ":7777")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env wins over file, file wins over default.
	if c.Server.Addr != ":7777" {
		t.Fatalf("addr = %q, want :7777", c.Server.Addr)
	}
	if c.Solver.MaxNeighborhoods != 7 {
		t.Fatalf("max neighborhoods = %d, want 7", c.Solver.MaxNeighborhoods)
	}
}

func TestLoadBadNumericEnv(t *testing.T) {
	t.Setenv("ROUTE_SOLVER_MAX_NEIGHBORHOODS", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric override")
	}
}
