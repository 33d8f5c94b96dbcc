package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally onto the flags.
type FileConfig struct {
	Input   string `yaml:"input" json:"input"`
	Request string `yaml:"request" json:"request"`
	Output  string `yaml:"output" json:"output"`

	Persona string `yaml:"persona" json:"persona"`
	Job     string `yaml:"job" json:"job"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Max struct {
		Sections int `yaml:"sections" json:"sections"`
	} `yaml:"max" json:"max"`

	PdftotextFallback bool `yaml:"pdftotextFallback" json:"pdftotextFallback"`
	SummaryPDF        bool `yaml:"summaryPDF" json:"summaryPDF"`
	Verbose           bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values onto cfg for fields still at their
// flag defaults, so explicit flags always win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		inputDefault       = "data/input"
		outputDefault      = "data/output"
		maxSectionsDefault = 5
	)

	if (cfg.InputDir == "" || cfg.InputDir == inputDefault) && fc.Input != "" {
		cfg.InputDir = fc.Input
	}
	if cfg.RequestPath == "" && fc.Request != "" {
		cfg.RequestPath = fc.Request
	}
	if (cfg.OutputDir == "" || cfg.OutputDir == outputDefault) && fc.Output != "" {
		cfg.OutputDir = fc.Output
	}
	if cfg.Persona == "" && fc.Persona != "" {
		cfg.Persona = fc.Persona
	}
	if cfg.Job == "" && fc.Job != "" {
		cfg.Job = fc.Job
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if (cfg.MaxSections == 0 || cfg.MaxSections == maxSectionsDefault) && fc.Max.Sections > 0 {
		cfg.MaxSections = fc.Max.Sections
	}
	if !cfg.PdftotextFallback && fc.PdftotextFallback {
		cfg.PdftotextFallback = true
	}
	if !cfg.SummaryPDF && fc.SummaryPDF {
		cfg.SummaryPDF = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation of required settings.
func ValidateConfig(cfg Config) error {
	if cfg.InputDir == "" {
		return errors.New("config: input directory is required")
	}
	if cfg.OutputDir == "" {
		return errors.New("config: output directory is required")
	}
	if cfg.MaxSections < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
