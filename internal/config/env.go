package config

import (
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	envPrefix  = "I3TRACKER"
)

// Load builds the effective configuration: defaults, then the TOML config
// file, then I3TRACKER_* environment variables (I3TRACKER_LOG_LIMIT for
// log.limit). A missing config file is not an error unless it was set
// explicitly with v.SetConfigFile.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	cfg := Default()
	setDefaults(v, cfg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log.dir", cfg.Log.Dir)
	v.SetDefault("log.base_name", cfg.Log.BaseName)
	v.SetDefault("log.limit", cfg.Log.Limit)
	v.SetDefault("log.delete_evicted", cfg.Log.DeleteEvicted)
	v.SetDefault("tracker.heartbeat", cfg.Tracker.Heartbeat)
	v.SetDefault("tracker.buffer", cfg.Tracker.Buffer)
	v.SetDefault("tracker.verbose", cfg.Tracker.Verbose)
	v.SetDefault("index.enabled", cfg.Index.Enabled)
	v.SetDefault("index.path", cfg.Index.Path)
	v.SetDefault("daemon.pid_file", cfg.Daemon.PIDFile)
	v.SetDefault("daemon.log_file", cfg.Daemon.LogFile)
}

type fileSchema struct {
	Log struct {
		Dir           string `toml:"dir"`
		BaseName      string `toml:"base_name"`
		Limit         int    `toml:"limit"`
		DeleteEvicted bool   `toml:"delete_evicted"`
	} `toml:"log"`
	Tracker struct {
		Heartbeat string `toml:"heartbeat"`
		Buffer    int    `toml:"buffer"`
		Verbose   bool   `toml:"verbose"`
	} `toml:"tracker"`
	Index struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"index"`
	Daemon struct {
		PIDFile string `toml:"pid_file"`
		LogFile string `toml:"log_file"`
	} `toml:"daemon"`
}

// TOML renders the configuration in the config file format
func (c *Config) TOML() ([]byte, error) {
	var f fileSchema
	f.Log.Dir = c.Log.Dir
	f.Log.BaseName = c.Log.BaseName
	f.Log.Limit = c.Log.Limit
	f.Log.DeleteEvicted = c.Log.DeleteEvicted
	f.Tracker.Heartbeat = c.Tracker.Heartbeat.String()
	f.Tracker.Buffer = c.Tracker.Buffer
	f.Tracker.Verbose = c.Tracker.Verbose
	f.Index.Enabled = c.Index.Enabled
	f.Index.Path = c.Index.Path
	f.Daemon.PIDFile = c.Daemon.PIDFile
	f.Daemon.LogFile = c.Daemon.LogFile

	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
