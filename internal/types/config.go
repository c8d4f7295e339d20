package types

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	DefaultPort                 = "8080"
	DefaultProjectID            = "your-project-id"
	DefaultEnvironment          = "dev"
	DefaultBaseBranch           = "main"
	DefaultMaxInstructionLength = 1000
)

// Config holds service-level settings for the CLI and the HTTP server. The core
// extract/render pipeline never reads it directly; values are passed in explicitly.
type Config struct {
	Port                 string       `yaml:"port"`
	ProjectID            string       `yaml:"project_id"`
	Environment          string       `yaml:"environment"`
	MaxInstructionLength int          `yaml:"max_instruction_length"`
	GitHub               GitHubConfig `yaml:"github"`
}

type GitHubConfig struct {
	Owner      string `yaml:"owner"`
	Repo       string `yaml:"repo"`
	Token      string `yaml:"token"`
	BaseBranch string `yaml:"base_branch"`
}

func (g GitHubConfig) IsConfigured() bool {
	return g.Owner != "" && g.Repo != "" && g.Token != ""
}

// ValidateInstruction applies the boundary rules for raw instructions. It runs at the
// CLI and HTTP entry points; the extract/render pipeline never length-checks.
func (c *Config) ValidateInstruction(instruction string) error {
	trimmed := strings.TrimSpace(instruction)
	if trimmed == "" {
		return fmt.Errorf("instruction is required")
	}
	if len(trimmed) > c.MaxInstructionLength {
		return fmt.Errorf("instruction exceeds %d characters", c.MaxInstructionLength)
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Port:                 DefaultPort,
		ProjectID:            DefaultProjectID,
		Environment:          DefaultEnvironment,
		MaxInstructionLength: DefaultMaxInstructionLength,
		GitHub: GitHubConfig{
			BaseBranch: DefaultBaseBranch,
		},
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults. A GITHUB_TOKEN
// environment variable wins over the file so tokens can stay out of committed configs.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if owner := os.Getenv("GITHUB_OWNER"); owner != "" && cfg.GitHub.Owner == "" {
		cfg.GitHub.Owner = owner
	}
	if repo := os.Getenv("GITHUB_REPO"); repo != "" && cfg.GitHub.Repo == "" {
		cfg.GitHub.Repo = repo
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.MaxInstructionLength <= 0 {
		cfg.MaxInstructionLength = DefaultMaxInstructionLength
	}
	if cfg.GitHub.BaseBranch == "" {
		cfg.GitHub.BaseBranch = DefaultBaseBranch
	}

	return cfg, nil
}
