package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "INTENT_CHAT"

	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	// Origin of the React dev server the chat widget is developed against
	devOrigin = "http://localhost:3000"
)

const RequestIDHeader = "X-Request-ID"

// Methods and headers allowed on cross origin requests, shared by the server and the lambda.
var (
	CORSAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	CORSAllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
)

type Config struct {
	ServerName       string            `mapstructure:"server_name" yaml:"server_name"`
	Environment      string            `mapstructure:"environment" yaml:"environment"`
	Port             int               `mapstructure:"port" yaml:"port"`
	Log              LogConfig         `mapstructure:"log" yaml:"log"`
	CORSAllowOrigins []string          `mapstructure:"cors_allow_origins" yaml:"cors_allow_origins"`
	Upstream         UpstreamConfig    `mapstructure:"upstream" yaml:"upstream"`
	Nationalize      NationalizeConfig `mapstructure:"nationalize" yaml:"nationalize"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type UpstreamConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CountriesURL   string        `mapstructure:"countries_url" yaml:"countries_url"`
	NationalizeURL string        `mapstructure:"nationalize_url" yaml:"nationalize_url"`
}

type NationalizeConfig struct {
	APIKey       string `mapstructure:"api_key" yaml:"-"`
	APIKeySecret string `mapstructure:"api_key_secret" yaml:"api_key_secret"`
}

// Load reads configuration from defaults, an optional YAML file, a .env file and INTENT_CHAT_*
// environment variables, in increasing order of precedence. An explicit path must exist; without
// one, config.yaml is looked up in the working directory and ./configs.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Most hosting platforms hand the listen port over in PORT
	_ = v.BindEnv("port", envPrefix+"_PORT", "PORT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = DefaultOrigins(cfg.Environment)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_name", "intent-chat")
	v.SetDefault("environment", EnvironmentProduction)
	v.SetDefault("port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors_allow_origins", []string{})
	v.SetDefault("upstream.timeout", 5*time.Second)
	v.SetDefault("upstream.countries_url", "https://restcountries.com/v3.1")
	v.SetDefault("upstream.nationalize_url", "https://api.nationalize.io")
	v.SetDefault("nationalize.api_key", "")
	v.SetDefault("nationalize.api_key_secret", "")
}

// DefaultOrigins is the CORS allow list used when none is configured: the local dev server in
// development, any origin everywhere else.
func DefaultOrigins(environment string) []string {
	if environment == EnvironmentDevelopment {
		return []string{devOrigin}
	}
	return []string{"*"}
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	for _, origin := range c.CORSAllowOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("bad CORS origin %q: must be * or start with http:// or https://", origin)
		}
		if strings.Count(origin, "*") > 1 {
			return fmt.Errorf("bad CORS origin %q: only one wildcard is supported", origin)
		}
	}
	return nil
}

// AllowsOrigin reports whether a browser origin matches one of the configured patterns. A
// pattern of "*" matches everything and a single "*" inside a pattern matches any run of
// characters, so "https://*.vercel.app" matches every preview deployment.
func (c Config) AllowsOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	for _, pattern := range c.CORSAllowOrigins {
		if pattern == "*" {
			return true
		}
		prefix, suffix, wildcard := strings.Cut(pattern, "*")
		if !wildcard {
			if strings.EqualFold(pattern, origin) {
				return true
			}
			continue
		}
		if len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(strings.ToLower(origin), strings.ToLower(prefix)) &&
			strings.HasSuffix(strings.ToLower(origin), strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// NewLogger builds the service logger. Validate has already rejected unknown levels and formats.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Log.Level))

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Log.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("service", c.ServerName))
}
