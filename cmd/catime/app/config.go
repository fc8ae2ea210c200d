package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultRepo is the repository the public cat catalog is published to.
const DefaultRepo = "yazelin/catime"

// Config holds the application configuration loaded from various sources
// including environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Query flags
	Repo  string
	Local bool
	List  bool

	// Generation configuration
	GeminiAPIKey string
	CatalogDir   string
	WorkDir      string
	StylesFile   string
	DocsDir      string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindAPIKeys()

	config := &Config{
		Repo: viper.GetString("GITHUB_REPOSITORY"),

		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
		CatalogDir:   getEnvOrDefault("CATIME_DIR", "."),
		WorkDir:      getEnvOrDefault("CATIME_WORK_DIR", os.TempDir()),
		StylesFile:   getEnvOrDefault("CATIME_STYLES", "styles.yaml"),
		DocsDir:      getEnvOrDefault("CATIME_DOCS", "docs"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	// GOOGLE_API_KEY is the GenAI SDK's own convention, accept it too.
	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = viper.GetString("GOOGLE_API_KEY")
	}
	if config.Repo == "" {
		config.Repo = DefaultRepo
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. This is
// called after cobra parses flags so flag values take precedence over
// environment variables.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys explicitly binds the environment variables catime reads to
// Viper, so values loaded from .env files are visible.
func bindAPIKeys() {
	keys := []string{
		"GEMINI_API_KEY",
		"GOOGLE_API_KEY",
		"GITHUB_REPOSITORY",
		"GH_TOKEN",
		"GITHUB_TOKEN",
	}
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
