package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// ModerationConfig carries the enforcement policy knobs. The threshold and
// the auto-ban override are policy constants, not structure: they live here
// so a policy change is a config change.
type ModerationConfig struct {
	// BanThreshold is the violation count at which an account is banned.
	BanThreshold int `mapstructure:"ban_threshold"`
	// BanStatusTTLSeconds bounds how long a cached ban status is trusted.
	BanStatusTTLSeconds int `mapstructure:"ban_status_ttl_seconds"`
	// CustomRules extends the built-in pattern table.
	CustomRules []map[string]interface{} `mapstructure:"custom_rules"`
}

type ProvidersConfig struct {
	Mistral    MistralConfig    `mapstructure:"mistral"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
}

type MistralConfig struct {
	APIKey         string             `mapstructure:"api_key"`
	BaseURL        string             `mapstructure:"base_url"`
	Model          string             `mapstructure:"model"`
	TimeoutSeconds int                `mapstructure:"timeout_seconds"`
	Categories     []string           `mapstructure:"categories"`
	Thresholds     map[string]float64 `mapstructure:"thresholds"`
}

type OpenRouterConfig struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	ConfidenceThreshold int    `mapstructure:"confidence_threshold"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine: environment variables only.
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Moderation.BanThreshold == 0 {
		globalConfig.Moderation.BanThreshold = 3
	}
	if globalConfig.Moderation.BanStatusTTLSeconds == 0 {
		globalConfig.Moderation.BanStatusTTLSeconds = 300
	}
}

func GetConfig() *Config {
	return &globalConfig
}
