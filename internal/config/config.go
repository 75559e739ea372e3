package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"MoneySmartz/internal/sim"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Player struct {
		Name        string  `yaml:"name"`
		Age         int     `yaml:"age"`
		Cash        float64 `yaml:"cash"`
		CreditScore int     `yaml:"credit_score"`
	} `yaml:"player"`
	Simulation struct {
		// Seed of 0 picks a random seed at startup.
		Seed              int64   `yaml:"seed"`
		RetirementAge     int     `yaml:"retirement_age"`
		RandomEventChance float64 `yaml:"random_event_chance"`
		FamilyChance      float64 `yaml:"family_chance"`
		// Penalties override the default table per field; zero keeps the default.
		Penalties sim.Penalties `yaml:"penalties"`
	} `yaml:"simulation"`
	Schedule struct {
		TickCron string `yaml:"tick_cron"`
		Fast     bool   `yaml:"fast"`
	} `yaml:"schedule"`
	Strategy struct {
		CashBuffer     float64 `yaml:"cash_buffer"`
		SavingsAccount bool    `yaml:"savings_account"`
	} `yaml:"strategy"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Strategy.SavingsAccount = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MONEYSMARTZ_PLAYER_NAME"); v != "" {
		cfg.Player.Name = v
	}
	if v := os.Getenv("MONEYSMARTZ_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse MONEYSMARTZ_SEED: %w", err)
		}
		cfg.Simulation.Seed = seed
	}
	if v := os.Getenv("MONEYSMARTZ_TICK_CRON"); v != "" {
		cfg.Schedule.TickCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Player.Name == "" {
		cfg.Player.Name = "Player"
	}
	if cfg.Player.Age == 0 {
		cfg.Player.Age = 16
	}
	if cfg.Player.Cash == 0 {
		cfg.Player.Cash = 100
	}
	if cfg.Player.CreditScore == 0 {
		cfg.Player.CreditScore = 650
	}
	if cfg.Simulation.RetirementAge == 0 {
		cfg.Simulation.RetirementAge = 65
	}
	if cfg.Simulation.RandomEventChance == 0 {
		cfg.Simulation.RandomEventChance = 0.30
	}
	if cfg.Simulation.FamilyChance == 0 {
		cfg.Simulation.FamilyChance = 0.10
	}
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "@every 1s"
	}
	if cfg.Strategy.CashBuffer == 0 {
		cfg.Strategy.CashBuffer = 500
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Player.Age < 0 || c.Player.Age >= c.Simulation.RetirementAge {
		return fmt.Errorf("player.age must be between 0 and simulation.retirement_age")
	}
	if c.Player.Cash < 0 {
		return errors.New("player.cash must not be negative")
	}
	if c.Player.CreditScore < 300 || c.Player.CreditScore > 850 {
		return errors.New("player.credit_score must be between 300 and 850")
	}
	if c.Simulation.RandomEventChance < 0 || c.Simulation.RandomEventChance > 1 {
		return errors.New("simulation.random_event_chance must be between 0 and 1")
	}
	if c.Simulation.FamilyChance < 0 || c.Simulation.FamilyChance > 1 {
		return errors.New("simulation.family_chance must be between 0 and 1")
	}
	pen := c.Simulation.Penalties
	if pen.LoanPayment < 0 || pen.CardMinimum < 0 || pen.LivingExpenses < 0 ||
		pen.RandomEvent < 0 || pen.RecurringBill < 0 {
		return errors.New("simulation.penalties must not be negative")
	}
	if c.Strategy.CashBuffer < 0 {
		return errors.New("strategy.cash_buffer must not be negative")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
