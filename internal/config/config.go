package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Agent backend modes.
const (
	ModeScripted = "scripted"
	ModeLLM      = "llm"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port      int     `koanf:"port"`
		RateLimit float64 `koanf:"rate_limit"`
	} `koanf:"server"`

	Agents struct {
		Mode string `koanf:"mode"`
		LLM  struct {
			Provider    string  `koanf:"provider"`
			Model       string  `koanf:"model"`
			APIKey      string  `koanf:"api_key"`
			BaseURL     string  `koanf:"base_url"`
			Temperature float64 `koanf:"temperature"`
			MaxTokens   int     `koanf:"max_tokens"`
		} `koanf:"llm"`
	} `koanf:"agents"`

	Retry struct {
		MaxRetries int           `koanf:"max_retries"`
		BaseDelay  time.Duration `koanf:"base_delay"`
		MaxDelay   time.Duration `koanf:"max_delay"`
		Multiplier float64       `koanf:"multiplier"`
	} `koanf:"retry"`

	Timeouts struct {
		Agent time.Duration `koanf:"agent"`
	} `koanf:"timeouts"`

	Pacing struct {
		Thinking time.Duration `koanf:"thinking"`
		Message  time.Duration `koanf:"message"`
	} `koanf:"pacing"`

	Ledger struct {
		SubmitDelay time.Duration `koanf:"submit_delay"`
	} `koanf:"ledger"`

	Session struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"session"`
}

// defaults is the baseline configuration applied before any file or
// environment overrides.
var defaults = map[string]interface{}{
	"server.port":            8888,
	"server.rate_limit":      5.0,
	"agents.mode":            ModeScripted,
	"agents.llm.provider":    "openai",
	"agents.llm.model":       "gpt-4o-mini",
	"agents.llm.temperature": 0.7,
	"agents.llm.max_tokens":  800,
	"retry.max_retries":      3,
	"retry.base_delay":       "2s",
	"retry.max_delay":        "60s",
	"retry.multiplier":       2.0,
	"timeouts.agent":         "60s",
	"pacing.thinking":        "2.5s",
	"pacing.message":         "300ms",
	"ledger.submit_delay":    "2s",
	"session.ttl":            "1h",
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	k.Load(confmap.Provider(defaults, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		// Try to load from default locations
		defaultPaths := []string{"./nexusdebate.toml", "$HOME/.nexusdebate.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix NEXUSDEBATE_
	k.Load(env.Provider("NEXUSDEBATE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "NEXUSDEBATE_")), "_", ".", -1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# NexusDebate Configuration

[server]
port = 8888
rate_limit = 5.0

[agents]
# "scripted" uses the deterministic template agents.
# "llm" backs every agent with a language model completion endpoint.
mode = "scripted"

[agents.llm]
provider = "openai"
model = "gpt-4o-mini"
api_key = "your-api-key"
temperature = 0.7
max_tokens = 800

[retry]
max_retries = 3
base_delay = "2s"
max_delay = "60s"
multiplier = 2.0

[timeouts]
agent = "60s"

[pacing]
# Cosmetic delays for the streaming mode. Set both to "0s" to disable.
thinking = "2.5s"
message = "300ms"

[ledger]
submit_delay = "2s"

[session]
ttl = "1h"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	switch config.Agents.Mode {
	case ModeScripted:
	case ModeLLM:
		if config.Agents.LLM.Provider == "" {
			return fmt.Errorf("agents.llm.provider is required in llm mode")
		}
		if config.Agents.LLM.Provider != "ollama" && config.Agents.LLM.APIKey == "" {
			return fmt.Errorf("agents.llm.api_key is required for provider %s", config.Agents.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown agents.mode %q (want %q or %q)", config.Agents.Mode, ModeScripted, ModeLLM)
	}

	if config.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative")
	}
	if config.Timeouts.Agent <= 0 {
		return fmt.Errorf("timeouts.agent must be positive")
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}

	return nil
}
