package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds CLI configuration.
type Config struct {
	Form  FormConfig
	Guide GuideConfig
}

// FormConfig holds settings shared by the run and fill commands.
type FormConfig struct {
	WorkDir string `mapstructure:"work_dir"`
	Theme   string
	Variant string
}

// GuideConfig holds guide rendering settings.
type GuideConfig struct {
	Flavor string
	Width  int
}

// Load reads configuration from file and env. Env var overrides use prefix
// FORMWIDGETS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("form.work_dir", "")
	v.SetDefault("form.theme", "")
	v.SetDefault("form.variant", "")
	v.SetDefault("guide.flavor", "markdown")
	v.SetDefault("guide.width", 0)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("FORMWIDGETS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formwidgets"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FORMWIDGETS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
