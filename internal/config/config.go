package config

import "time"

// Config is the root application configuration. It is constructed once at
// startup and passed explicitly to every component that needs it; nothing
// reads configuration ambiently. The remote/local storage decision is made
// here, once, and fixed for the process lifetime.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Local    LocalConfig    `yaml:"local"`
	Auth     AuthConfig     `yaml:"auth"`
	Garden   GardenConfig   `yaml:"garden"`
	Advice   AdviceConfig   `yaml:"advice"`
	Email    EmailConfig    `yaml:"email"`
	Reminder ReminderConfig `yaml:"reminder"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN is not an
// error: it selects the local device store and the demo identity.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LocalConfig holds settings for the device-resident fallback store.
type LocalConfig struct {
	Path string `yaml:"path" env:"LOCAL_STORE_PATH" env-default:"./data/leaflink"`
}

// AuthConfig holds session-gate settings. Only consulted in remote mode.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"leaflink"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
	BCryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// GardenConfig holds garden-controller settings.
type GardenConfig struct {
	NotificationTTL time.Duration `yaml:"notification_ttl" env:"GARDEN_NOTIFICATION_TTL" env-default:"4s"`
}

// AdviceConfig holds the external plant-care advisory service settings.
// An empty BaseURL disables the feature; callers degrade silently.
type AdviceConfig struct {
	BaseURL string        `yaml:"base_url" env:"ADVICE_BASE_URL"`
	APIKey  string        `yaml:"api_key"  env:"ADVICE_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"ADVICE_TIMEOUT" env-default:"10s"`
}

// EmailConfig holds outbound email settings. Without an API key the notifier
// runs in simulation mode: it logs what it would have sent.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key" env:"EMAIL_SENDGRID_API_KEY"`
	FromAddress    string `yaml:"from_address"     env:"EMAIL_FROM_ADDRESS" env-default:"no-reply@leaflink.app"`
	FromName       string `yaml:"from_name"        env:"EMAIL_FROM_NAME"    env-default:"LeafLink"`
}

// ReminderConfig holds the watering-reminder worker settings.
type ReminderConfig struct {
	RecheckPeriod time.Duration `yaml:"recheck_period" env:"REMINDER_RECHECK_PERIOD" env-default:"6h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RemoteConfigured reports whether a remote datastore is configured. This is
// the single switch between the cloud deployment (Postgres + real accounts)
// and demo mode (local store + fixed identity).
func (c *Config) RemoteConfigured() bool {
	return c.Database.DSN != ""
}
