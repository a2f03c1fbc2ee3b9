package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Locale string `env:"CMD_TEST_LOCALE" envDefault:"en-US"`
	Mode   string `env:"CMD_TEST_MODE" envDefault:"battle"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_LOCALE", "zh-TW")
	t.Setenv("CMD_TEST_MODE", "env-mode")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Locale, "locale", cfgRef.Locale, "locale")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")

	if err := ParseArgs(fs, []string{"-locale", "en-US"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Locale != "en-US" {
		t.Fatalf("expected flag value for locale, got %q", cfgRef.Locale)
	}
	if cfgRef.Mode != "env-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestParseConfigFromArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_LOCALE", "zh-TW")
	t.Setenv("CMD_TEST_MODE", "configarg-mode")

	cfgRef := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.StringVar(&cfgRef.Locale, "locale", "", "locale")
	fs.StringVar(&cfgRef.Mode, "mode", "", "mode")
	if err := ParseConfigFromArgs(&cfgRef, fs, []string{"-locale", "en-US"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfgRef.Locale != "en-US" {
		t.Fatalf("expected parsed flag locale, got %q", cfgRef.Locale)
	}
	if cfgRef.Mode != "configarg-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(nil, "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(nil, ServiceSimulate, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestParseConfigReadsDotEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cmd.env")
	if err := os.WriteFile(file, []byte("CMD_TEST_DOTENV_MODE=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("EGYPT_ADVENTURES_DOTENV", file)
	t.Setenv("CMD_TEST_DOTENV_MODE", "")
	os.Unsetenv("CMD_TEST_DOTENV_MODE")

	var cfg struct {
		Mode string `env:"CMD_TEST_DOTENV_MODE"`
	}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Mode != "from-dotenv" {
		t.Fatalf("mode = %q, want from-dotenv", cfg.Mode)
	}
}

func TestRunWithTelemetryRunsFunction(t *testing.T) {
	t.Setenv("EGYPT_ADVENTURES_OTEL_ENDPOINT", "")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceSimulate, func(context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !called {
		t.Fatal("expected run function to be called")
	}
}
