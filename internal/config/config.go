package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Reports  ReportsConfig  `mapstructure:"reports"`
	Streak   StreakConfig   `mapstructure:"streak"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host" validate:"required"`
	Port            int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Database        string `mapstructure:"database" validate:"required"`
	Username        string `mapstructure:"username" validate:"required"`
	Password        string `mapstructure:"password"`
	TLS             bool   `mapstructure:"tls"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type ReportsConfig struct {
	OutputDirectory string `mapstructure:"output_directory" validate:"required"`
}

type StreakConfig struct {
	// DefaultTarget is the consecutive-correct run length a streak attempt
	// requires when the caller does not specify one.
	DefaultTarget int `mapstructure:"default_target" validate:"min=1"`
	// ReplayPolicy selects the next-question policy: "strict" or "replay".
	ReplayPolicy string `mapstructure:"replay_policy" validate:"oneof=strict replay"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/opodrill")
	}

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "opodrill")
	v.SetDefault("database.username", "opodrill")
	v.SetDefault("server.port", 8080)
	v.SetDefault("reports.output_directory", filepath.Join("outputs", "reports"))
	v.SetDefault("streak.default_target", 10)
	v.SetDefault("streak.replay_policy", "strict")

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "OPODRILL_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind OPODRILL_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("server.jwt_secret", "OPODRILL_JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind OPODRILL_JWT_SECRET environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
