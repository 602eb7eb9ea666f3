package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	if cfg.Game.CurrentCity == "" {
		cfg.Game.CurrentCity = "rome"
	}
	if cfg.Game.TickInterval == 0 {
		cfg.Game.TickInterval = time.Second
	}
	if cfg.Game.TradeCycleTicks == 0 {
		cfg.Game.TradeCycleTicks = 60
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if len(cfg.Cities) == 0 {
		cfg.Cities = map[string]CityConfig{
			"rome": {
				Size: 10,
				DepositDensity: map[string]float64{
					"water":  0.4,
					"stone":  0.3,
					"copper": 0.2,
					"iron":   0.2,
					"coal":   0.3,
					"gold":   0.1,
				},
			},
		}
	}
}
