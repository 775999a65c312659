package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// runStyles lists the styles available for standalone output.
func runStyles(args []string, env *Environment) error {
	cfg, err := loadReadOnlyConfig("styles", args)
	if err != nil {
		return err
	}

	loader, err := md2html.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	names, err := loader.Styles()
	if err != nil {
		return err
	}
	for _, name := range names {
		marker := "  "
		if name == md2html.DefaultStyle {
			marker = "* "
		}
		fmt.Fprintf(env.Stdout, "%s%s\n", marker, name)
	}
	return nil
}

// runConfigCmd prints the configuration after the config file and
// environment are applied.
func runConfigCmd(args []string, env *Environment) error {
	cfg, err := loadReadOnlyConfig("config", args)
	if err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}

// loadReadOnlyConfig parses the flags shared by styles and config and
// returns the merged configuration.
func loadReadOnlyConfig(name string, args []string) (*config.Config, error) {
	f, positional, err := parseConfigFlags(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	envs, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(f.config, envs.Config)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(cfg, envs)
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
