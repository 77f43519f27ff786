// Package config loads the chatmsg CLI configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lifei6671/chatmsg"
)

type Config struct {
	Lang     LangConfig     `mapstructure:"lang"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
}

type LangConfig struct {
	Dir     string `mapstructure:"dir"`
	Default string `mapstructure:"default"`
	// Allowed restricts the loadable languages. Empty means any language.
	// A list is used because viper lower-cases map keys.
	Allowed []LanguageFile `mapstructure:"allowed"`
}

type LanguageFile struct {
	Name string `mapstructure:"name"`
	File string `mapstructure:"file"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type DispatchConfig struct {
	Mode string `mapstructure:"mode"`
}

// Load reads the config file at path (optional) and CHATMSG_* environment
// variables. v may carry flag bindings; nil means a fresh instance.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetEnvPrefix("CHATMSG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang.dir", "./lang")
	v.SetDefault("lang.default", "en_US")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	v.SetDefault("dispatch.mode", "combined")
}

// Validate checks values viper cannot type check.
func (c *Config) Validate() error {
	if _, err := chatmsg.ParseDispatchMode(c.Dispatch.Mode); err != nil {
		return fmt.Errorf("dispatch.mode: %w", err)
	}
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json", "":
	default:
		return fmt.Errorf("logger.format: unknown format %q", c.Logger.Format)
	}
	if strings.TrimSpace(c.Lang.Default) == "" {
		return fmt.Errorf("lang.default is required")
	}
	for i, l := range c.Lang.Allowed {
		if l.Name == "" {
			return fmt.Errorf("lang.allowed[%d]: name is required", i)
		}
	}
	return nil
}

// Messages converts the CLI config into the library config.
func (c *Config) Messages() chatmsg.Config {
	mode, _ := chatmsg.ParseDispatchMode(c.Dispatch.Mode)
	var allowed map[string]string
	if len(c.Lang.Allowed) > 0 {
		allowed = make(map[string]string, len(c.Lang.Allowed))
		for _, l := range c.Lang.Allowed {
			allowed[l.Name] = l.File
		}
	}
	return chatmsg.Config{
		DefaultLanguage: c.Lang.Default,
		Dir:             c.Lang.Dir,
		Languages:       allowed,
		DispatchMode:    mode,
	}
}
