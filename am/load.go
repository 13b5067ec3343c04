package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

// Load reads the generator configuration. An explicit configPath must exist;
// otherwise the nearest vkgen.toml walking up from the working directory is
// used, and defaults apply when none is found. VKGEN_* environment variables
// override file values (VKGEN_GEN_RAII=false).
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath == "" {
		configPath = findProjectConfig()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, errors.WrapConfiguration(err, "config file "+configPath)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapConfiguration(err, "failed to read config file "+configPath)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfiguration(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path without
// environment overrides.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapConfiguration(err, "failed to read config file "+configPath)
	}
	return LoadWithViper(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("VKGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// findProjectConfig walks up from the working directory looking for vkgen.toml
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(dir)
}

func findConfigFrom(dir string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
