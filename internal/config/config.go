package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Game   GameConfig            `mapstructure:"game"`
	Server ServerConfig          `mapstructure:"server"`
	Cities map[string]CityConfig `mapstructure:"cities" validate:"required,min=1,dive"`
}

// GameConfig holds the simulation settings
type GameConfig struct {
	// CurrentCity is the id of the city the player is running
	CurrentCity string `mapstructure:"current_city" validate:"required"`

	// TickInterval is the wall-clock duration of one simulation tick
	// (used by watch/serve; batch runs ignore it)
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// TradeCycleTicks is the number of ticks between market quote refreshes
	TradeCycleTicks int `mapstructure:"trade_cycle_ticks" validate:"min=1"`

	// Seed drives deposit placement and market quote fluctuation
	Seed int64 `mapstructure:"seed"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CityConfig describes one configured city
type CityConfig struct {
	// Size is the edge length of the square city map in tiles
	Size int `mapstructure:"size" validate:"min=1"`

	// DepositDensity maps a deposit resource to the fraction of tiles
	// expected to carry it, each in [0, 1]
	DepositDensity map[string]float64 `mapstructure:"deposit_density" validate:"dive,min=0,max=1"`
}

// Layout converts the config entry into the layout the grid math consumes
func (c CityConfig) Layout(id string) grid.CityLayout {
	density := make(map[models.ResourceType]float64, len(c.DepositDensity))
	for rt, d := range c.DepositDensity {
		density[models.ResourceType(rt)] = d
	}
	return grid.CityLayout{ID: id, Size: c.Size, DepositDensity: density}
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("CF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK - env vars and defaults still apply
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}
