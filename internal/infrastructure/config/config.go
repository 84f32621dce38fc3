package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	CRM       CRMConfig
	Store     StoreConfig
	Sync      SyncConfig
	Event     EventConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
	WebhookSecret  string // shared secret expected in X-Webhook-Secret; empty disables the check
}

// CRMConfig holds the CiviCRM REST endpoint settings
type CRMConfig struct {
	BaseURL string        `validate:"required,url"`
	APIKey  string        // user api_key
	SiteKey string        // site key sent as "key"
	Timeout time.Duration `validate:"gt=0"`
}

// StoreConfig holds the WooCommerce REST endpoint settings
type StoreConfig struct {
	BaseURL        string        `validate:"required,url"`
	ConsumerKey    string        // basic auth user
	ConsumerSecret string        // basic auth password
	Timeout        time.Duration `validate:"gt=0"`
}

// SyncConfig holds address synchronization settings
type SyncConfig struct {
	BillingLocationTypeID  int64         `validate:"gt=0"`
	ShippingLocationTypeID int64         `validate:"gt=0,nefield=BillingLocationTypeID"`
	DefaultEnabled         bool          // used when the flag is absent from the options table
	SettingsCacheTTL       time.Duration `validate:"gte=0"`
}

// EventConfig holds event relay and duplicate delivery settings
type EventConfig struct {
	RelayEnabled       bool
	RelayChannel       string        `validate:"required"`
	IdempotencyEnabled bool
	IdempotencyBackend string        `validate:"oneof=memory redis"`
	IdempotencyTTL     time.Duration `validate:"gt=0"`
}

// TelemetryConfig holds OpenTelemetry export settings
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string  `validate:"required_if=Enabled true"`
	Insecure          bool
	SamplingRatio     float64 `validate:"gte=0,lte=1"`
	MetricsInterval   time.Duration
	ExportLogs        bool
	TraceDB           bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SYNC_ prefix (e.g., SYNC_CRM_API_KEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans cannot be told apart from "unset" after reading, so they get viper defaults
	v.SetDefault("sync.default_enabled", false)
	v.SetDefault("event.relay_enabled", true)
	v.SetDefault("event.idempotency_enabled", true)
	v.SetDefault("telemetry.insecure", true)
	v.SetDefault("telemetry.sampling_ratio", 1.0)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
			WebhookSecret:  v.GetString("http.webhook_secret"),
		},
		CRM: CRMConfig{
			BaseURL: v.GetString("crm.base_url"),
			APIKey:  v.GetString("crm.api_key"),
			SiteKey: v.GetString("crm.site_key"),
			Timeout: v.GetDuration("crm.timeout"),
		},
		Store: StoreConfig{
			BaseURL:        v.GetString("store.base_url"),
			ConsumerKey:    v.GetString("store.consumer_key"),
			ConsumerSecret: v.GetString("store.consumer_secret"),
			Timeout:        v.GetDuration("store.timeout"),
		},
		Sync: SyncConfig{
			BillingLocationTypeID:  v.GetInt64("sync.billing_location_type_id"),
			ShippingLocationTypeID: v.GetInt64("sync.shipping_location_type_id"),
			DefaultEnabled:         v.GetBool("sync.default_enabled"),
			SettingsCacheTTL:       v.GetDuration("sync.settings_cache_ttl"),
		},
		Event: EventConfig{
			RelayEnabled:       v.GetBool("event.relay_enabled"),
			RelayChannel:       v.GetString("event.relay_channel"),
			IdempotencyEnabled: v.GetBool("event.idempotency_enabled"),
			IdempotencyBackend: v.GetString("event.idempotency_backend"),
			IdempotencyTTL:     v.GetDuration("event.idempotency_ttl"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			Insecure:          v.GetBool("telemetry.insecure"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			ExportLogs:        v.GetBool("telemetry.export_logs"),
			TraceDB:           v.GetBool("telemetry.trace_db"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "addresssync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "addresssync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if cfg.CRM.BaseURL == "" {
		cfg.CRM.BaseURL = "http://localhost/sites/all/modules/civicrm/extern/rest.php"
	}
	if cfg.CRM.Timeout == 0 {
		cfg.CRM.Timeout = 10 * time.Second
	}
	if cfg.Store.BaseURL == "" {
		cfg.Store.BaseURL = "http://localhost/wp-json"
	}
	if cfg.Store.Timeout == 0 {
		cfg.Store.Timeout = 10 * time.Second
	}
	// CiviCRM stock location types: Billing=5, Home=1
	if cfg.Sync.BillingLocationTypeID == 0 {
		cfg.Sync.BillingLocationTypeID = 5
	}
	if cfg.Sync.ShippingLocationTypeID == 0 {
		cfg.Sync.ShippingLocationTypeID = 1
	}
	if cfg.Sync.SettingsCacheTTL == 0 {
		cfg.Sync.SettingsCacheTTL = 30 * time.Second
	}
	if cfg.Event.RelayChannel == "" {
		cfg.Event.RelayChannel = "addresssync.events"
	}
	if cfg.Event.IdempotencyBackend == "" {
		cfg.Event.IdempotencyBackend = "memory"
	}
	if cfg.Event.IdempotencyTTL == 0 {
		cfg.Event.IdempotencyTTL = time.Hour
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	sections := map[string]any{
		"crm":       c.CRM,
		"store":     c.Store,
		"sync":      c.Sync,
		"event":     c.Event,
		"telemetry": c.Telemetry,
	}
	for name, section := range sections {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("invalid %s config: %w", name, err)
		}
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.CRM.APIKey == "" || c.CRM.SiteKey == "" {
			return fmt.Errorf("crm.api_key and crm.site_key are required in production")
		}
		if c.Store.ConsumerKey == "" || c.Store.ConsumerSecret == "" {
			return fmt.Errorf("store.consumer_key and store.consumer_secret are required in production")
		}
		if c.HTTP.WebhookSecret == "" {
			return fmt.Errorf("http.webhook_secret is required in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
