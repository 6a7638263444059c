package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix          = "CULTR_WEB"
	defaultEnvFile     = ".env"
	defaultPort        = "8080"
	defaultMarketTTL   = 30 * time.Second
	defaultRefresh     = 30 * time.Second
	defaultMaxConns    = 512
	defaultLogLevel    = "info"
	minRefreshInterval = time.Second
)

// ErrInvalid wraps every validation failure returned by Load.
var ErrInvalid = errors.New("config: invalid")

// Config captures runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Market    MarketConfig
	Log       LogConfig
	API       APIConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures the HTTP listener and template/asset locations.
type ServerConfig struct {
	Addr         string
	Dev          bool
	TemplatesDir string
	PublicDir    string
	MaxConns     int
}

// SiteConfig holds page-level settings.
type SiteConfig struct {
	URL         string
	ContentPath string
}

// MarketConfig configures the token quote client and the live refresh cadence.
type MarketConfig struct {
	URL          string
	CacheTTL     time.Duration
	RefreshEvery time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// APIConfig configures the public JSON API.
type APIConfig struct {
	AllowedOrigins []string
}

// AnalyticsConfig carries optional analytics settings rendered into the layout.
type AnalyticsConfig struct {
	PlausibleDomain string
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	envFile string
	lookup  func(string) (string, bool)
}

// WithEnvFile overrides the dotenv file path. An empty path disables dotenv loading.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithLookup replaces the process environment with fn, mainly for tests.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookup = fn
		}
	}
}

// Load reads an optional .env file, then CULTR_WEB_* environment variables.
// Existing environment variables are never overridden by the dotenv file.
func Load(opts ...Option) (Config, error) {
	o := loadOptions{envFile: defaultEnvFile}
	for _, opt := range opts {
		opt(&o)
	}
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", o.envFile, err)
		}
	}

	lookup := o.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	v := viper.New()
	port := defaultPort
	if p, ok := lookup("PORT"); ok && strings.TrimSpace(p) != "" {
		port = strings.TrimSpace(p)
	}
	v.SetDefault("addr", ":"+port)
	v.SetDefault("dev", false)
	v.SetDefault("templates", "templates")
	v.SetDefault("public", "public")
	v.SetDefault("content", "")
	v.SetDefault("site_url", "")
	v.SetDefault("market_url", "")
	v.SetDefault("market_ttl", defaultMarketTTL)
	v.SetDefault("price_refresh", defaultRefresh)
	v.SetDefault("max_conns", defaultMaxConns)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("plausible_domain", "")

	if o.lookup == nil {
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	} else {
		for _, key := range v.AllKeys() {
			if raw, ok := o.lookup(envPrefix + "_" + strings.ToUpper(key)); ok {
				v.Set(key, raw)
			}
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         strings.TrimSpace(v.GetString("addr")),
			Dev:          v.GetBool("dev"),
			TemplatesDir: strings.TrimSpace(v.GetString("templates")),
			PublicDir:    strings.TrimSpace(v.GetString("public")),
			MaxConns:     v.GetInt("max_conns"),
		},
		Site: SiteConfig{
			URL:         strings.TrimRight(strings.TrimSpace(v.GetString("site_url")), "/"),
			ContentPath: strings.TrimSpace(v.GetString("content")),
		},
		Market: MarketConfig{
			URL:          strings.TrimSpace(v.GetString("market_url")),
			CacheTTL:     v.GetDuration("market_ttl"),
			RefreshEvery: v.GetDuration("price_refresh"),
		},
		Log: LogConfig{Level: strings.ToLower(strings.TrimSpace(v.GetString("log_level")))},
		API: APIConfig{AllowedOrigins: splitList(v.GetString("allowed_origins"))},
		Analytics: AnalyticsConfig{PlausibleDomain: strings.TrimSpace(v.GetString("plausible_domain"))},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: addr is empty", ErrInvalid)
	}
	if c.Server.MaxConns < 0 {
		return fmt.Errorf("%w: max_conns must not be negative", ErrInvalid)
	}
	if c.Market.CacheTTL <= 0 {
		return fmt.Errorf("%w: market_ttl must be positive", ErrInvalid)
	}
	if c.Market.RefreshEvery < minRefreshInterval {
		return fmt.Errorf("%w: price_refresh must be at least %s", ErrInvalid, minRefreshInterval)
	}
	for name, raw := range map[string]string{"site_url": c.Site.URL, "market_url": c.Market.URL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %s %q is not an absolute http(s) url", ErrInvalid, name, raw)
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
