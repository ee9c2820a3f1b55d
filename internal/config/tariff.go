package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TariffConfig is the rate book applied when a run does not carry an
// explicit override. Feeder overrides win over the default rate.
type TariffConfig struct {
	DefaultRate     float64            `mapstructure:"defaultRate"`
	FeederOverrides map[string]float64 `mapstructure:"feederOverrides"`
}

// RateFor resolves the tariff rate for a feeder.
func (c TariffConfig) RateFor(feederCode string) float64 {
	if rate, ok := c.FeederOverrides[strings.ToUpper(feederCode)]; ok {
		return rate
	}
	return c.DefaultRate
}

type TariffConfigHolder struct {
	current atomic.Value // holds TariffConfig
}

// NewTariffConfigHolder loads tariff.yml and keeps it hot-reloaded. When no
// file exists, the env-derived default rate applies to every feeder.
func NewTariffConfigHolder(base Config) (*TariffConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("tariff")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/voltra/config") // Volume-mounted config
	v.AddConfigPath("/etc/voltra")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("VOLTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		v.SetDefault("tariff.defaultRate", base.DefaultTariffRate)
	}

	var cfg TariffConfig
	if err := v.UnmarshalKey("tariff", &cfg); err != nil {
		return nil, err
	}
	if cfg.DefaultRate == 0 {
		cfg.DefaultRate = base.DefaultTariffRate
	}
	if err := validateTariffConfig(cfg); err != nil {
		return nil, err
	}

	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TariffConfig
		if err := v.UnmarshalKey("tariff", &updated); err != nil {
			log.Printf("[tariff-config] reload failed: %v", err)
			return
		}
		if updated.DefaultRate == 0 {
			updated.DefaultRate = base.DefaultTariffRate
		}
		if err := validateTariffConfig(updated); err != nil {
			log.Printf("[tariff-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tariff-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *TariffConfigHolder) Get() TariffConfig {
	return h.current.Load().(TariffConfig)
}

func validateTariffConfig(cfg TariffConfig) error {
	if cfg.DefaultRate <= 0 {
		return errors.New("tariff.defaultRate must be positive")
	}
	for code, rate := range cfg.FeederOverrides {
		if rate <= 0 {
			return errors.New("tariff.feederOverrides." + code + " must be positive")
		}
	}
	return nil
}
