package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	GitLab  GitLabConfig  `yaml:"gitlab"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// GitLabConfig holds GitLab API configuration
type GitLabConfig struct {
	BaseURL     string `yaml:"base_url"`     // API root, e.g. https://gitlab.com/api/v4
	Token       string `yaml:"token"`        // Personal access token (bearer)
	InsecureTLS bool   `yaml:"insecure_tls"` // Skip TLS certificate verification
	CACertPath  string `yaml:"ca_cert_path"` // Path to custom CA certificate file
	PerPage     int    `yaml:"per_page"`     // Page size for paginated list calls
}

// MonitorConfig holds the optional HTTP monitoring endpoint configuration
type MonitorConfig struct {
	Port string `yaml:"port"` // Empty disables the monitor server
}

// DefaultBaseURL is the public hosted GitLab API endpoint
const DefaultBaseURL = "https://gitlab.com/api/v4"

// DefaultPerPage is the page size used by paginated list calls
const DefaultPerPage = 100

// Load loads configuration from environment variables, optionally merged over
// a YAML file named by GITLAB_MCP_CONFIG_FILE. Environment values win.
func Load() (*Config, error) {
	cfg := &Config{
		GitLab: GitLabConfig{
			BaseURL: DefaultBaseURL,
			PerPage: DefaultPerPage,
		},
	}

	if path := os.Getenv("GITLAB_MCP_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - operator-supplied config path
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.GitLab.BaseURL = getEnv("GITLAB_API_URL", cfg.GitLab.BaseURL)
	cfg.GitLab.Token = getEnv("GITLAB_PERSONAL_ACCESS_TOKEN", cfg.GitLab.Token)
	cfg.GitLab.InsecureTLS = getEnvBool("GITLAB_INSECURE_TLS", cfg.GitLab.InsecureTLS)
	cfg.GitLab.CACertPath = getEnv("GITLAB_CA_CERT_PATH", cfg.GitLab.CACertPath)
	cfg.GitLab.PerPage = getEnvInt("GITLAB_PER_PAGE", cfg.GitLab.PerPage)
	cfg.Monitor.Port = getEnv("MONITOR_PORT", cfg.Monitor.Port)

	if cfg.GitLab.PerPage <= 0 {
		cfg.GitLab.PerPage = DefaultPerPage
	}

	return cfg, nil
}

// HasToken returns true if a GitLab token is configured
func (c *Config) HasToken() bool {
	return c.GitLab.Token != ""
}

// MonitorEnabled returns true if the monitoring endpoint should be served
func (c *Config) MonitorEnabled() bool {
	return c.Monitor.Port != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true"
	}
	return defaultValue
}
