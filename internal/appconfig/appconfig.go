package appconfig

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// DefaultBaseURL is used when no base URL or codespace is configured.
const DefaultBaseURL = "http://localhost:8000/api/"

// Config holds all configuration details
type Config struct {
	BaseURL       string       `yaml:"baseUrl"`
	CodespaceName string       `yaml:"codespaceName"`
	LogLevel      string       `yaml:"logLevel"`
	Server        ServerConfig `yaml:"server"`
	HTTP          HTTPConfig   `yaml:"http"`
}

// ServerConfig defines where the web shell listens and how long an untouched
// membership draft is kept. Zero draft settings select the defaults.
type ServerConfig struct {
	Host      string        `yaml:"host"`
	Port      int           `yaml:"port"`
	DraftTTL  time.Duration `yaml:"draftTtl"`
	MaxDrafts int           `yaml:"maxDrafts"`
}

// HTTPConfig defines the outbound client settings. A zero timeout means none.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
	}
}

// LoadConfig loads and parses the configuration from a given file path. An
// empty path yields the defaults. Variables from a .env file in the working
// directory are loaded first and never override the real environment.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	config := Default()

	if path != "" {
		// Parse the template file
		tmpl, err := template.ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file template: %w", err)
		}

		// Execute the template with environment variables
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, loadEnvVars()); err != nil {
			return nil, fmt.Errorf("error executing config file template: %w", err)
		}

		// Load and unmarshal the YAML
		if err := yaml.Unmarshal(buf.Bytes(), config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	}

	applyEnv(config)
	return config, nil
}

// APIBaseURL resolves the backend API root: an explicit base URL, else the
// codespace forwarding address, else localhost.
func (c *Config) APIBaseURL() string {
	switch {
	case c.BaseURL != "":
		return withTrailingSlash(c.BaseURL)
	case c.CodespaceName != "":
		return CodespaceBaseURL(c.CodespaceName)
	default:
		return DefaultBaseURL
	}
}

// CodespaceBaseURL is the forwarded port 8000 address of a GitHub codespace.
func CodespaceBaseURL(name string) string {
	return fmt.Sprintf("https://%s-8000.app.github.dev/api/", name)
}

func applyEnv(c *Config) {
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("OCTOFIT_BASE_URL")
	}
	if c.CodespaceName == "" {
		c.CodespaceName = firstEnv("CODESPACE_NAME", "REACT_APP_CODESPACE_NAME")
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
