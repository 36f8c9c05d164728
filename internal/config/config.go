package config

import (
	"fmt"
	"net"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site        SiteConfig        `yaml:"site"`
	Server      ServerConfig      `yaml:"server"`
	Theme       ThemeConfig       `yaml:"theme"`
	Annotations AnnotationsConfig `yaml:"annotations"`
	Features    FeaturesConfig    `yaml:"features"`
	Branding    BrandingConfig    `yaml:"branding"`
	Database    DatabaseConfig    `yaml:"database"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Sidenote"`
	Description string `yaml:"description" default:"A personal annotation library"`
	Tagline     string `yaml:"tagline" default:"Notes in the margins"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12700"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark"`
	AllowSwitching     bool         `yaml:"allow_switching" default:"true"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

type AnnotationsConfig struct {
	PerPage      int    `yaml:"per_page" default:"50"`
	DefaultGroup string `yaml:"default_group" default:"public"`
}

type FeaturesConfig struct {
	Authentication AuthConfig        `yaml:"authentication"`
	Editor         EditorConfig      `yaml:"editor"`
	Suggestions    SuggestionsConfig `yaml:"suggestions"`
}

type AuthConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Type    string `yaml:"type" default:"ed25519"`
}

type EditorConfig struct {
	Enabled     bool   `yaml:"enabled" default:"true"`
	LivePreview bool   `yaml:"live_preview" default:"true"`
	KeymapPath  string `yaml:"keymap_path" default:""`
}

type SuggestionsConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
	Limit   int  `yaml:"limit" default:"10"`
}

// BrandingConfig carries the optional style settings resolved by the theme
// package. Empty values mean "no override".
type BrandingConfig struct {
	AccentColor          string `yaml:"accent_color" default:""`
	AppBackgroundColor   string `yaml:"app_background_color" default:""`
	CtaBackgroundColor   string `yaml:"cta_background_color" default:""`
	CtaTextColor         string `yaml:"cta_text_color" default:""`
	SelectionFontFamily  string `yaml:"selection_font_family" default:""`
	AnnotationFontFamily string `yaml:"annotation_font_family" default:""`
}

type DatabaseConfig struct {
	Path string `yaml:"path" default:"sidenote.db"`
}

type ArchiveConfig struct {
	Enabled  bool   `yaml:"enabled" default:"false"`
	Bucket   string `yaml:"bucket" default:""`
	Region   string `yaml:"region" default:"us-east-1"`
	Endpoint string `yaml:"endpoint" default:""`
	Prefix   string `yaml:"prefix" default:"annotations/"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

// SiteName returns the configured site name, or the default when no config
// has been loaded (tests, tools).
func SiteName() string {
	if AppConfig != nil {
		return AppConfig.Site.Name
	}
	return "Sidenote"
}

// BrandingSettings returns the loaded branding section, or nil when no config
// has been loaded.
func BrandingSettings() *BrandingConfig {
	if AppConfig != nil {
		return &AppConfig.Branding
	}
	return nil
}

// ServerAddress returns the host:port the server should listen on.
func ServerAddress() string {
	host, port := "0.0.0.0", "12700"
	if AppConfig != nil {
		host, port = AppConfig.Server.Host, AppConfig.Server.Port
	}
	return net.JoinHostPort(host, port)
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
