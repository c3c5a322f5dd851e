package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const configPathEnv = "CONFIG_PATH_STOREFRONT"

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   HTTPServerConfig   `yaml:"http_server"`
	GRPCServer   GRPCServerConfig   `yaml:"grpc_server"`
	MongoDB      MongoDBConfig      `yaml:"mongo"`
	Redis        RedisConfig        `yaml:"redis"`
	NATS         NATSConfig         `yaml:"nats"`
	Logger       LoggerConfig       `yaml:"logger"`
	Auth         AuthConfig         `yaml:"auth"`
	ProductCache ProductCacheConfig `yaml:"product_cache"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	S3           S3Config           `yaml:"s3"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Tracing      TracingConfig      `yaml:"tracing"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_TIMEOUT_GRACEFUL" env-default:"15s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"HTTP_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// GRPCServerConfig configures the health/reflection endpoint used by probes.
// Port "off" disables it.
type GRPCServerConfig struct {
	Port              string        `yaml:"port" env:"GRPC_PORT_STOREFRONT" env-default:"50060"`
	MaxConnectionIdle time.Duration `yaml:"max_connection_idle" env-default:"15m"`
	TimeoutGraceful   time.Duration `yaml:"timeout_graceful_shutdown" env-default:"5s"`
	HealthInterval    time.Duration `yaml:"health_interval" env:"GRPC_HEALTH_INTERVAL" env-default:"15s"`
}

type MongoDBConfig struct {
	URI                    string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User                   string        `yaml:"user" env:"MONGO_USER"`
	Password               string        `yaml:"password" env:"MONGO_PASSWORD"`
	Database               string        `yaml:"database" env:"MONGO_DATABASE" env-default:"fashion_store"`
	ServerSelectionTimeout time.Duration `yaml:"server_selection_timeout" env:"MONGO_SERVER_SELECTION_TIMEOUT" env-default:"5s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// NATSConfig: an empty URL disables event publishing and the confirmation mailer.
type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
	BcryptCost    int           `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"12"`
	AdminEmail    string        `yaml:"admin_email" env:"AUTH_ADMIN_EMAIL"`
	AdminPassword string        `yaml:"admin_password" env:"AUTH_ADMIN_PASSWORD"`
}

type ProductCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"PRODUCT_CACHE_TTL" env-default:"5m"`
}

// SMTPConfig: an empty host disables order confirmation emails.
type SMTPConfig struct {
	Host        string        `yaml:"host" env:"SMTP_HOST"`
	Port        int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string        `yaml:"username" env:"SMTP_USERNAME"`
	Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string        `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption  string        `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName  string        `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT" env-default:"15s"`
}

// S3Config: an empty endpoint disables product image uploads.
type S3Config struct {
	Endpoint  string `yaml:"endpoint" env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"S3_BUCKET" env-default:"product-images"`
	UseSSL    bool   `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
}

// MetricsConfig: port "off" disables the Prometheus listener and collectors.
type MetricsConfig struct {
	Port      string `yaml:"port" env:"METRICS_PORT" env-default:"9095"`
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE" env-default:"storefront"`
}

type TracingConfig struct {
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"storefront-service"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

const (
	localJWTSecret = "local-development-secret"
	disabledPort   = "off"
)

// LoadConfig reads the YAML file at path (environment variables override it).
// A missing file falls back to environment variables and defaults only.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return finalize(&cfg)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
		log.Printf("Warning: config file not found at %s, loading from environment variables only", path)
		if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
			return nil, errEnv
		}
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != "local" && cfg.Env != "test" {
			return nil, fmt.Errorf("auth.jwt_secret must be set when env is %q", cfg.Env)
		}
		cfg.Auth.JWTSecret = localJWTSecret
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("auth.token_ttl must be positive, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.MongoDB.Database == "" {
		return nil, errors.New("mongo.database must not be empty")
	}
	if strings.EqualFold(cfg.GRPCServer.Port, disabledPort) {
		cfg.GRPCServer.Port = ""
	}
	if strings.EqualFold(cfg.Metrics.Port, disabledPort) {
		cfg.Metrics.Port = ""
	}
	return cfg, nil
}

// MustLoad resolves the config path from --config, then CONFIG_PATH_STOREFRONT,
// then ./config.yaml.
func MustLoad() *Config {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "path to the YAML config file")
	pflag.Parse()

	if configPath == "" {
		configPath = os.Getenv(configPathEnv)
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
