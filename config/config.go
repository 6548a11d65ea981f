// Initializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ds124wfegd/iconify/internal/entity"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
)

type Config struct {
	Compose ComposeConfig `mapstructure:"compose"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

type ComposeConfig struct {
	Placement      string `mapstructure:"placement"`
	Naming         string `mapstructure:"naming"`
	MaxDimension   int    `mapstructure:"max_dimension"`
	Grayscale      bool   `mapstructure:"grayscale"`
	Filter         string `mapstructure:"filter"`
	PNGCompression string `mapstructure:"png_compression"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Idle_timeout   time.Duration `mapstructure:"idle_timeout"`
	Mode           string        `mapstructure:"mode"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// LoadConfig builds a viper instance from defaults, an optional YAML file and ICONIFY_* variables.
// An explicit path must exist; the default ./config/config.yaml may be absent.
func LoadConfig(path string) (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.SetEnvPrefix("ICONIFY")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	if path != "" {
		viperInstance.SetConfigFile(path)
		if err := viperInstance.ReadInConfig(); err != nil {
			return nil, err
		}
		return viperInstance, nil
	}

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Compose defaults
	v.SetDefault("compose.placement", string(entity.PlacementPadded))
	v.SetDefault("compose.naming", string(entity.NamingPrefixed))
	v.SetDefault("compose.max_dimension", processor.DefaultMaxDimension)
	v.SetDefault("compose.grayscale", false)
	v.SetDefault("compose.filter", "lanczos")
	v.SetDefault("compose.png_compression", "default")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_upload_bytes", 10<<20)
}

// ProcessorOptions validates the compose section and converts it.
func (c ComposeConfig) ProcessorOptions() (processor.Options, error) {
	opts := processor.DefaultOptions()

	placement, err := entity.ParsePlacement(c.Placement)
	if err != nil {
		return opts, err
	}
	filter, err := processor.ParseFilter(c.Filter)
	if err != nil {
		return opts, err
	}
	compression, err := processor.ParseCompression(c.PNGCompression)
	if err != nil {
		return opts, err
	}
	if c.MaxDimension < 0 {
		return opts, fmt.Errorf("%w: max_dimension %d", entity.ErrInvalidConfig, c.MaxDimension)
	}

	opts.Placement = placement
	opts.Filter = filter
	opts.Compression = compression
	opts.MaxDimension = c.MaxDimension
	opts.Grayscale = c.Grayscale
	return opts, nil
}

func (c ComposeConfig) NamingScheme() (entity.Naming, error) {
	return entity.ParseNaming(c.Naming)
}

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
