package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       Env
	Server    ServerConfig
	Database  DatabaseConfig
	Minio     MinioConfig
	Auth      AuthConfig
	Detector  DetectorConfig
	NATS      NATSConfig
	Reconcile ReconcileConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint       string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	AccessKey      string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey      string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL         bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	VideoBucket    string        `envconfig:"MINIO_VIDEO_BUCKET" default:"videos"`
	LogBucket      string        `envconfig:"MINIO_LOG_BUCKET" default:"logs"`
	PresignTTL     time.Duration `envconfig:"MINIO_PRESIGN_TTL" default:"1h"`
	RetryAttempts  int           `envconfig:"MINIO_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"MINIO_RETRY_BASE_DELAY" default:"300ms"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"AUTH_JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
}

type DetectorConfig struct {
	Endpoint            string        `envconfig:"DETECTOR_ENDPOINT" required:"true"`
	ConfidenceThreshold float64       `envconfig:"DETECTOR_CONFIDENCE_THRESHOLD" default:"0.6"`
	Timeout             time.Duration `envconfig:"DETECTOR_TIMEOUT" default:"5m"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	Subject      string `envconfig:"NATS_SUBJECT" required:"true"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
}

type ReconcileConfig struct {
	SweepEvery time.Duration `envconfig:"RECONCILE_SWEEP_EVERY" default:"15m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
