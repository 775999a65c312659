package main

// Notes:
// - styles: embedded listing with the default marked, plus custom asset dirs.
// - config: prints the merged configuration as YAML.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/config"
)

// defaultTestConfig returns defaults for building a converter directly.
func defaultTestConfig() *config.Config {
	return config.DefaultConfig()
}

// ---------------------------------------------------------------------------
// TestRunStyles - Style listing
// ---------------------------------------------------------------------------

func TestRunStyles(t *testing.T) {
	t.Parallel()

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "styles"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if got := stdout.String(); got != "* default\n  minimal\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("custom asset path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "styles/corporate.css", "body{}")
		env, stdout, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "styles", "--asset-path", dir}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		if got := stdout.String(); got != "  corporate\n* default\n  minimal\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("unexpected argument", func(t *testing.T) {
		t.Parallel()
		env, _, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "styles", "extra"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConfigCmd - Effective configuration
// ---------------------------------------------------------------------------

func TestRunConfigCmd(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "config"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		got := stdout.String()
		for _, want := range []string{"engine: line", "lang: en"} {
			if !strings.Contains(got, want) {
				t.Errorf("stdout missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("from file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		cfgPath := writeFile(t, dir, "site.yaml", "engine: commonmark\ncss:\n  style: minimal\n")
		env, stdout, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "config", "-c", cfgPath}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		got := stdout.String()
		for _, want := range []string{"engine: commonmark", "style: minimal"} {
			if !strings.Contains(got, want) {
				t.Errorf("stdout missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfgPath := writeFile(t, t.TempDir(), "bad.yaml", "engine: pandoc\n")
		env, _, _ := newTestEnv("")

		if code := runMain([]string{"md2html", "config", "-c", filepath.Clean(cfgPath)}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}
