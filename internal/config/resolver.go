// Package config resolves runtime settings from the config file,
// environment variables, and CLI flags. Precedence is config < env < CLI,
// and every resolved value remembers where it came from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type ValueSource string

const (
	SourceUnknown ValueSource = "unknown"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
	SourceDefault ValueSource = "default"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

type ResolveOptions struct {
	ConfigPath      string
	CLIDBPath       string
	CLINERModel     string
	CLINERTokenizer string
}

type ResolvedConfig struct {
	ConfigPath string `json:"config_path"`

	DBPath           ResolvedValue `json:"db_path"`
	NERModelPath     ResolvedValue `json:"ner_model_path"`
	NERTokenizerPath ResolvedValue `json:"ner_tokenizer_path"`
}

type fileConfig struct {
	DBPath string `yaml:"db_path"`
	NER    struct {
		ModelPath     string `yaml:"model_path"`
		TokenizerPath string `yaml:"tokenizer_path"`
	} `yaml:"ner"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".intake", "config.yaml")
}

func ResolveConfig(opts ResolveOptions) (ResolvedConfig, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = DefaultConfigPath()
	}

	out := ResolvedConfig{ConfigPath: path}

	cfg, err := loadConfig(path)
	if err != nil {
		return out, err
	}

	if cfg != nil {
		apply(&out.DBPath, cfg.DBPath, SourceConfig, path)
		apply(&out.NERModelPath, cfg.NER.ModelPath, SourceConfig, path)
		apply(&out.NERTokenizerPath, cfg.NER.TokenizerPath, SourceConfig, path)
	}

	applyEnv(&out.DBPath, "INTAKE_DB")
	applyEnv(&out.DBPath, "INTAKE_DB_PATH")
	applyEnv(&out.NERModelPath, "INTAKE_NER_MODEL")
	applyEnv(&out.NERTokenizerPath, "INTAKE_NER_TOKENIZER")

	apply(&out.DBPath, opts.CLIDBPath, SourceCLI, "--db")
	apply(&out.NERModelPath, opts.CLINERModel, SourceCLI, "--ner-model")
	apply(&out.NERTokenizerPath, opts.CLINERTokenizer, SourceCLI, "--ner-tokenizer")

	out.DBPath.Value = expandUserPath(out.DBPath.Value)
	out.NERModelPath.Value = expandUserPath(out.NERModelPath.Value)
	out.NERTokenizerPath.Value = expandUserPath(out.NERTokenizerPath.Value)

	return out, nil
}

func apply(dst *ResolvedValue, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = ResolvedValue{Value: v, Source: source, From: from}
}

func applyEnv(dst *ResolvedValue, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = ResolvedValue{Value: v, Source: SourceEnv, From: envKey}
	}
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
