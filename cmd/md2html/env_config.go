package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-md2html/internal/config"
)

// Environment variable names.
const (
	envPrefix    = "MD2HTML_"
	envConfig    = "MD2HTML_CONFIG"
	envEngine    = "MD2HTML_ENGINE"
	envStyle     = "MD2HTML_STYLE"
	envLang      = "MD2HTML_LANG"
	envAssetPath = "MD2HTML_ASSET_PATH"
	envInputDir  = "MD2HTML_INPUT_DIR"
	envOutputDir = "MD2HTML_OUTPUT_DIR"
	envWorkers   = "MD2HTML_WORKERS"
)

// knownEnvVars lists every MD2HTML_ variable the CLI reads.
var knownEnvVars = map[string]bool{
	envConfig:    true,
	envEngine:    true,
	envStyle:     true,
	envLang:      true,
	envAssetPath: true,
	envInputDir:  true,
	envOutputDir: true,
	envWorkers:   true,
}

// envSettings holds values read from MD2HTML_ variables. Empty means unset.
type envSettings struct {
	Config    string
	Engine    string
	Style     string
	Lang      string
	AssetPath string
	InputDir  string
	OutputDir string
	Workers   int
}

// loadEnvConfig reads MD2HTML_ variables.
func loadEnvConfig() (*envSettings, error) {
	s := &envSettings{
		Config:    os.Getenv(envConfig),
		Engine:    os.Getenv(envEngine),
		Style:     os.Getenv(envStyle),
		Lang:      os.Getenv(envLang),
		AssetPath: os.Getenv(envAssetPath),
		InputDir:  os.Getenv(envInputDir),
		OutputDir: os.Getenv(envOutputDir),
	}

	if v := os.Getenv(envWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidWorkerCount, envWorkers, v)
		}
		s.Workers = n
	}

	return s, nil
}

// warnUnknownEnvVars prints a warning for each unrecognized MD2HTML_ variable.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overlays set variables onto cfg.
// Variables take precedence over the config file; flags are merged afterwards.
func applyEnvConfig(cfg *config.Config, s *envSettings) {
	if s.Engine != "" {
		cfg.Engine = s.Engine
	}
	if s.Style != "" {
		cfg.CSS.Style = s.Style
	}
	if s.Lang != "" {
		cfg.Document.Lang = s.Lang
	}
	if s.AssetPath != "" {
		cfg.Assets.BasePath = s.AssetPath
	}
	if s.InputDir != "" {
		cfg.Input.DefaultDir = s.InputDir
	}
	if s.OutputDir != "" {
		cfg.Output.DefaultDir = s.OutputDir
	}
}
