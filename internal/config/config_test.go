package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DUMPER_ENV_FILE", filepath.Join(dir, "absent.env"))
	t.Setenv("DUMPER_DB_PATH", "")
	return dir
}

func TestLoadDumperConfig_DefaultsDisableEventLog(t *testing.T) {
	isolateEnv(t)
	cfg, err := LoadDumperConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.EventLogEnabled() {
		t.Fatalf("expected event log disabled, db path=%q", cfg.DBPath)
	}
}

func TestLoadDumperConfig_ReadsDBPathFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DUMPER_DB_PATH", "/state/dumper.db")
	cfg, err := LoadDumperConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.DBPath != "/state/dumper.db" || !cfg.EventLogEnabled() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDumperConfig_LoadsEnvFile(t *testing.T) {
	dir := isolateEnv(t)
	os.Unsetenv("DUMPER_DB_PATH")
	envFile := filepath.Join(dir, "dumper.env")
	if err := os.WriteFile(envFile, []byte("DUMPER_DB_PATH=/tmp/from-file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUMPER_ENV_FILE", envFile)

	cfg, err := LoadDumperConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.DBPath != "/tmp/from-file.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if cfg.EnvFile != envFile {
		t.Fatalf("unexpected env file: %q", cfg.EnvFile)
	}
}

func TestLoadDumperConfig_EnvironmentWinsOverFile(t *testing.T) {
	dir := isolateEnv(t)
	envFile := filepath.Join(dir, "dumper.env")
	if err := os.WriteFile(envFile, []byte("DUMPER_DB_PATH=/tmp/from-file.db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DUMPER_ENV_FILE", envFile)
	t.Setenv("DUMPER_DB_PATH", "/tmp/from-env.db")

	cfg, err := LoadDumperConfig()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
}

func TestLoadDumperConfig_UnreadableEnvFile(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("DUMPER_ENV_FILE", dir)
	_, err := LoadDumperConfig()
	if err == nil {
		t.Fatal("expected error for env file that is a directory")
	}
	if !strings.Contains(err.Error(), "DUMPER_ENV_FILE") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("DUMPER_TEST_KEY", "")
	if got := envOrDefault("DUMPER_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("unexpected fallback: %s", got)
	}
	t.Setenv("DUMPER_TEST_KEY", "set")
	if got := envOrDefault("DUMPER_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("unexpected value: %s", got)
	}
}
