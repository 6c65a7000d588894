package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "PAPERBRIEF_CONFIG"
	openAIAPIKeyEnv = "OPENAI_API_KEY"
	openAIModelEnv  = "OPENAI_MODEL"
	outputDirEnv    = "PAPERBRIEF_OUTPUT_DIR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Query   QueryConfig   `yaml:"query"`
	Report  ReportConfig  `yaml:"report"`
	Sites   []SiteConfig  `yaml:"sites"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OutputConfig describes where result files are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// OpenAIConfig defines how to contact the chat-completion API. An empty
// APIKey disables summarization entirely.
type OpenAIConfig struct {
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// QueryConfig shapes the structured API query: result cap, category codes,
// and the topic vocabulary joined into a boolean-OR search expression.
type QueryConfig struct {
	MaxResults int      `yaml:"maxResults"`
	Categories []string `yaml:"categories"`
	Topics     []string `yaml:"topics"`
}

// ReportConfig captures the Markdown digest header.
type ReportConfig struct {
	Title      string `yaml:"title"`
	TopicsLine string `yaml:"topicsLine"`
}

// SiteConfig describes a single source with its scanner strategy. Options
// carry per-strategy settings such as listing URLs and CSS selectors.
type SiteConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	Options map[string]string `yaml:"options"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. The path argument wins over the PAPERBRIEF_CONFIG variable.
func Load(path string) Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env file")
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(outputDirEnv); v != "" {
		c.Output.Dir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Output.Dir != "" {
		base.Output = override.Output
	}

	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.Temperature != 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}
	if override.OpenAI.MaxTokens != 0 {
		base.OpenAI.MaxTokens = override.OpenAI.MaxTokens
	}

	if override.Query.MaxResults != 0 {
		base.Query.MaxResults = override.Query.MaxResults
	}
	if len(override.Query.Categories) > 0 {
		base.Query.Categories = override.Query.Categories
	}
	if len(override.Query.Topics) > 0 {
		base.Query.Topics = override.Query.Topics
	}

	if override.Report.Title != "" {
		base.Report.Title = override.Report.Title
	}
	if override.Report.TopicsLine != "" {
		base.Report.TopicsLine = override.Report.TopicsLine
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Dir: "summaries"},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			APIKey:      "",
			Temperature: 0.2,
			MaxTokens:   350,
		},
		Query: QueryConfig{
			MaxResults: 30,
			Categories: []string{"cs.HC", "cs.CY", "cs.CL"},
			Topics: []string{
				"HCI",
				"computer-mediated communication",
				"advertising",
				"marketing communication",
				"attention",
				"cognitive offloading",
				"generative AI",
				"virtual reality",
			},
		},
		Report: ReportConfig{
			Title: "Daily HCI/CMC Paper Brief",
			TopicsLine: "Topics: attention, cognitive offloading, generative AI, virtual reality, " +
				"advertising communication.",
		},
		Sites: []SiteConfig{
			{
				Name:    "arXiv",
				Scanner: "arxiv-api",
			},
		},
	}
}
