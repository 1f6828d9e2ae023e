package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/tuannm99/novacloud/internal/ply"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

type NovaCloudConfig struct {
	AppName string `mapstructure:"app_name"`

	PLY struct {
		ASCII         bool     `mapstructure:"ascii"`
		ByteOrder     string   `mapstructure:"byte_order"`
		IgnoreMissing bool     `mapstructure:"ignore_missing"`
		Comments      []string `mapstructure:"comments"`
	} `mapstructure:"ply"`

	Text struct {
		Delimiter string `mapstructure:"delimiter"`
		Header    bool   `mapstructure:"header"`
		Comment   string `mapstructure:"comment"`
	} `mapstructure:"text"`

	Convert struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"convert"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novacloud")
	v.SetDefault("ply.ascii", false)
	v.SetDefault("ply.byte_order", "<")
	v.SetDefault("ply.ignore_missing", true)
	v.SetDefault("text.delimiter", ",")
	v.SetDefault("text.header", false)
	v.SetDefault("convert.workers", 4)
	v.SetDefault("log.level", "info")
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() (*NovaCloudConfig, error) {
	v := viper.New()
	setDefaults(v)
	var cfg NovaCloudConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads a YAML file. NOVACLOUD_* environment variables
// override file values (e.g. NOVACLOUD_PLY_BYTE_ORDER).
func LoadConfig(path string) (*NovaCloudConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("novacloud")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg NovaCloudConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := cfg.WriteOptions(); err != nil {
		return nil, fmt.Errorf("config ply: %w", err)
	}
	if _, err := cfg.TextOptions(); err != nil {
		return nil, fmt.Errorf("config text: %w", err)
	}
	if _, err := cfg.LogLevel(); err != nil {
		return nil, fmt.Errorf("config log: %w", err)
	}
	return &cfg, nil
}

// WriteOptions translates the ply section into encoder options.
func (c *NovaCloudConfig) WriteOptions() (ply.WriteOptions, error) {
	enc, err := ply.EncodingFor(c.PLY.ASCII, c.PLY.ByteOrder)
	if err != nil {
		return ply.WriteOptions{}, err
	}
	return ply.WriteOptions{Encoding: enc, Comments: c.PLY.Comments}, nil
}

// Selection builds a read selection honoring ply.ignore_missing.
func (c *NovaCloudConfig) Selection(fields []string) ply.Selection {
	return ply.Selection{Fields: fields, IgnoreMissing: c.PLY.IgnoreMissing}
}

func (c *NovaCloudConfig) TextOptions() (textcloud.Options, error) {
	opts := textcloud.Options{Header: c.Text.Header}

	d, err := parseRune(c.Text.Delimiter)
	if err != nil {
		return opts, fmt.Errorf("delimiter: %w", err)
	}
	opts.Delimiter = d

	cm, err := parseRune(c.Text.Comment)
	if err != nil {
		return opts, fmt.Errorf("comment: %w", err)
	}
	opts.Comment = cm
	return opts, nil
}

func (c *NovaCloudConfig) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(c.Log.Level))
	return lvl, err
}

// parseRune accepts a single character, "tab", or "" / "blank" for runs of
// blanks.
func parseRune(s string) (rune, error) {
	switch s {
	case "", "blank":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: %q", textcloud.ErrBadDelimiter, s)
	}
	return r, nil
}
