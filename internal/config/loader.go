package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in values that cannot be expressed by DefaultConfig alone.
func applyDefaults(cfg *Config) {
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = map[string]ProfileConfig{
			DefaultProfileName: JLCPCBProfile(),
		}
	}

	if db := cfg.Corrections.Database; db != nil {
		defaults := DefaultDatabaseConfig()
		if db.Port == 0 {
			db.Port = defaults.Port
		}
		if db.TLS == "" {
			db.TLS = defaults.TLS
		}
		if db.MaxConnections == 0 {
			db.MaxConnections = defaults.MaxConnections
		}
		if db.MaxIdleConnections == 0 {
			db.MaxIdleConnections = defaults.MaxIdleConnections
		}
		if db.Table == "" {
			db.Table = defaults.Table
		}
	}
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Header fields are left alone since reserved tokens start with '$'.
func substituteEnvVars(cfg *Config) error {
	cfg.Board.Path = expandEnvVar(cfg.Board.Path)
	cfg.Board.Name = expandEnvVar(cfg.Board.Name)
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Corrections.File = expandEnvVar(cfg.Corrections.File)

	if db := cfg.Corrections.Database; db != nil {
		db.Host = expandEnvVar(db.Host)
		db.User = expandEnvVar(db.User)
		db.Password = expandEnvVar(db.Password)
		db.Database = expandEnvVar(db.Database)
	}

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// GetProfile retrieves a specific profile configuration by name.
func (c *Config) GetProfile(name string) (*ProfileConfig, error) {
	profile, exists := c.Profiles[name]
	if !exists {
		// viper lowercases map keys
		profile, exists = c.Profiles[strings.ToLower(name)]
	}
	if !exists {
		return nil, fmt.Errorf("profile %q not found in configuration", name)
	}
	return &profile, nil
}

// ListProfiles returns all profile names in lexical order.
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, boardPath, outputDir string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if boardPath != "" {
		c.Board.Path = boardPath
	}
	if outputDir != "" {
		c.Output.Dir = outputDir
	}
}
