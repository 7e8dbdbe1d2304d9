package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stripe       StripeConfig
	Payments     PaymentsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MYPARTSRUNNER_APP_ENV" required:"true"`
	Port         string `envconfig:"MYPARTSRUNNER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MYPARTSRUNNER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MYPARTSRUNNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MYPARTSRUNNER_DB_DSN"`
	Driver string `envconfig:"MYPARTSRUNNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MYPARTSRUNNER_DB_HOST"`
	LegacyPort     int    `envconfig:"MYPARTSRUNNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MYPARTSRUNNER_DB_USER"`
	LegacyPassword string `envconfig:"MYPARTSRUNNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"MYPARTSRUNNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"MYPARTSRUNNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MYPARTSRUNNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MYPARTSRUNNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MYPARTSRUNNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MYPARTSRUNNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MYPARTSRUNNER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MYPARTSRUNNER_REDIS_ADDR"`
	Password     string        `envconfig:"MYPARTSRUNNER_REDIS_PASSWORD"`
	DB           int           `envconfig:"MYPARTSRUNNER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MYPARTSRUNNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MYPARTSRUNNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MYPARTSRUNNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MYPARTSRUNNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MYPARTSRUNNER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type StripeConfig struct {
	APIKey         string `envconfig:"MYPARTSRUNNER_STRIPE_API_KEY"`
	PublishableKey string `envconfig:"MYPARTSRUNNER_STRIPE_PUBLISHABLE_KEY"`
	WebhookSecret  string `envconfig:"MYPARTSRUNNER_STRIPE_WEBHOOK_SECRET"`
	Env            string `envconfig:"MYPARTSRUNNER_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type PaymentsConfig struct {
	Currency string `envconfig:"MYPARTSRUNNER_PAYMENTS_CURRENCY" default:"usd"`
	// TTL for the webhook event-id dedup marks in Redis.
	WebhookEventTTL time.Duration `envconfig:"MYPARTSRUNNER_PAYMENTS_WEBHOOK_EVENT_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"MYPARTSRUNNER_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"MYPARTSRUNNER_PUBSUB_NOTIFICATION_TOPIC" default:"mpr-notification-events"`
	NotificationSubscription string `envconfig:"MYPARTSRUNNER_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"MYPARTSRUNNER_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"MYPARTSRUNNER_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"MYPARTSRUNNER_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MYPARTSRUNNER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
