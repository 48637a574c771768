package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/embervale/tarotjack/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server  ServerSettings `hcl:"server,block"`
	Tables  []TableConfig  `hcl:"table,block"`
	Effects []EffectConfig `hcl:"effect,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	HistoryDir  string `hcl:"history_dir,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// TableConfig defines one table's house rules.
type TableConfig struct {
	Name           string  `hcl:"name,label"`
	MinBet         int     `hcl:"min_bet"`
	MaxBet         int     `hcl:"max_bet"`
	DealerStandsOn int     `hcl:"dealer_stands_on,optional"`
	StartingHealth float64 `hcl:"starting_health,optional"`
}

// EffectConfig overrides amounts of a built-in tarot effect. The
// catalog itself is closed; configuration can retune an effect but not
// introduce new behavior kinds.
type EffectConfig struct {
	ID       string  `hcl:"id,label"`
	Name     string  `hcl:"name,optional"`
	PerCard  int     `hcl:"per_card,optional"`
	Factor   float64 `hcl:"factor,optional"`
	Fraction float64 `hcl:"fraction,optional"`
}

const defaultIdleTimeout = 5 * time.Minute

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:     "localhost",
			Port:        8080,
			LogLevel:    "info",
			IdleTimeout: "5m",
		},
		Tables: []TableConfig{
			{
				Name:           "main",
				MinBet:         1,
				MaxBet:         50,
				DealerStandsOn: 17,
				StartingHealth: 100,
			},
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing
// file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.IdleTimeout == "" {
		config.Server.IdleTimeout = "5m"
	}
	if len(config.Tables) == 0 {
		config.Tables = DefaultConfig().Tables
	}
	for i := range config.Tables {
		if config.Tables[i].DealerStandsOn == 0 {
			config.Tables[i].DealerStandsOn = 17
		}
		if config.Tables[i].StartingHealth == 0 {
			config.Tables[i].StartingHealth = 100
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := time.ParseDuration(c.Server.IdleTimeout); err != nil {
		return fmt.Errorf("invalid idle_timeout %q: %w", c.Server.IdleTimeout, err)
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, table := range c.Tables {
		if table.MinBet <= 0 {
			return fmt.Errorf("table %s: min_bet must be positive", table.Name)
		}
		if table.MaxBet < table.MinBet {
			return fmt.Errorf("table %s: max_bet must be at least min_bet", table.Name)
		}
		if table.DealerStandsOn < 2 || table.DealerStandsOn > game.BustThreshold {
			return fmt.Errorf("table %s: dealer_stands_on must be between 2 and %d", table.Name, game.BustThreshold)
		}
		if table.StartingHealth <= 0 {
			return fmt.Errorf("table %s: starting_health must be positive", table.Name)
		}
	}

	catalog := game.NewRegistry(game.DefaultCatalog()...)
	for _, effect := range c.Effects {
		base, ok := catalog.Get(game.EffectID(effect.ID))
		if !ok {
			return fmt.Errorf("effect %s: not in the catalog", effect.ID)
		}
		if effect.PerCard < 0 {
			return fmt.Errorf("effect %s: per_card must not be negative", effect.ID)
		}
		if effect.Factor != 0 && base.Kind != game.StreakMultiplier {
			return fmt.Errorf("effect %s: factor applies only to streak multipliers", effect.ID)
		}
		if effect.Factor < 0 {
			return fmt.Errorf("effect %s: factor must not be negative", effect.ID)
		}
		if effect.Fraction != 0 && base.Kind != game.LossRefund {
			return fmt.Errorf("effect %s: fraction applies only to loss refunds", effect.ID)
		}
		if effect.Fraction < 0 || effect.Fraction > 1 {
			return fmt.Errorf("effect %s: fraction must be between 0 and 1", effect.ID)
		}
	}

	return nil
}

// Registry builds the effect catalog with any configured overrides
// applied on top of the defaults.
func (c *Config) Registry() *game.Registry {
	effects := game.DefaultCatalog()
	for i := range effects {
		for _, override := range c.Effects {
			if effects[i].ID != game.EffectID(override.ID) {
				continue
			}
			if override.Name != "" {
				effects[i].Name = override.Name
			}
			if override.PerCard != 0 {
				effects[i].PerCard = override.PerCard
			}
			if override.Factor != 0 {
				effects[i].Factor = override.Factor
			}
			if override.Fraction != 0 {
				effects[i].Fraction = override.Fraction
			}
		}
	}
	return game.NewRegistry(effects...)
}

// ListenAddress returns the full server listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns the parsed session idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil || d <= 0 {
		return defaultIdleTimeout
	}
	return d
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
