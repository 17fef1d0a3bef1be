package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ukydev/fleet-fuel/internal/registry"
)

// Config keys. Each is also read from FLEETFUEL_<KEY>.
const (
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeySimTicks  = "sim_ticks"
	KeySimSeed   = "sim_seed"
	KeyVehicles  = "vehicles"

	envPrefix      = "FLEETFUEL"
	configName     = "fleetfuel"
	configType     = "yaml"
	defaultEnvFile = ".env"
)

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":  KeyLogLevel,
	"log-format": KeyLogFormat,
	"ticks":      KeySimTicks,
	"seed":       KeySimSeed,
}

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel  string
	LogFormat string
	SimTicks  int
	SimSeed   int64
	Vehicles  []registry.VehicleSpec
}

// Options controls where Load looks for settings.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, ./fleetfuel.yaml is
	// used if present.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the environment first.
	// Defaults to .env; a missing file is ignored.
	EnvFile string
	// Flags, when set, override every other source for the flags the
	// user changed.
	Flags *pflag.FlagSet
}

// Load resolves configuration with precedence flag > env > file > default.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeySimTicks, 20)
	v.SetDefault(KeySimSeed, 1)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		SimTicks:  v.GetInt(KeySimTicks),
		SimSeed:   v.GetInt64(KeySimSeed),
	}
	if err := v.UnmarshalKey(KeyVehicles, &cfg.Vehicles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyVehicles, err)
	}
	if len(cfg.Vehicles) == 0 {
		cfg.Vehicles = registry.DefaultFleet()
	}

	if cfg.SimTicks < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", KeySimTicks, cfg.SimTicks)
	}
	return cfg, nil
}
