package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"food-delivery-bff"`

	Server      ServerConfig      `envconfig:"SERVER"`
	Database    DatabaseConfig    `envconfig:"DB"`
	Redis       RedisConfig       `envconfig:"REDIS"`
	RabbitMQ    RabbitMQConfig    `envconfig:"RABBITMQ"`
	Kafka       KafkaConfig       `envconfig:"KAFKA"`
	Auth        AuthConfig        `envconfig:"AUTH"`
	Marketplace MarketplaceConfig `envconfig:"MARKETPLACE"`
	Payment     PaymentConfig     `envconfig:"PAYMENT"`
	Maps        MapsConfig        `envconfig:"MAPS"`
	Cache       CacheConfig       `envconfig:"CACHE"`
	Delivery    DeliveryConfig    `envconfig:"DELIVERY"`
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	// InternalAPIKey guards the /internal routes called by the marketplace.
	InternalAPIKey string `envconfig:"INTERNAL_API_KEY"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3306"`
	User            string        `envconfig:"USER" default:"root"`
	Password        string        `envconfig:"PASSWORD"`
	Name            string        `envconfig:"NAME" default:"food_delivery"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"5m"`
}

type RedisConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"5672"`
	User     string `envconfig:"USER" default:"guest"`
	Password string `envconfig:"PASSWORD" default:"guest"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"BROKERS"`
	Buffer  int      `envconfig:"BUFFER" default:"256"`
}

type AuthConfig struct {
	JWTSecret      string        `envconfig:"JWT_SECRET"`
	JWTExpiration  time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	SessionExpTime time.Duration `envconfig:"SESSION_EXP_TIME" default:"24h"`
}

type MarketplaceConfig struct {
	BaseURL      string        `envconfig:"BASE_URL" default:"http://localhost:5000/api"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"10s"`
	ReadAttempts uint          `envconfig:"READ_ATTEMPTS" default:"3"`
	ReadBackoff  time.Duration `envconfig:"READ_BACKOFF" default:"200ms"`
}

type PaymentConfig struct {
	PublishableKey string `envconfig:"PUBLISHABLE_KEY"`
}

type MapsConfig struct {
	APIKey string `envconfig:"API_KEY"`
}

type CacheConfig struct {
	TTL time.Duration `envconfig:"TTL" default:"2m"`
}

type DeliveryConfig struct {
	DriverID            string        `envconfig:"DRIVER_ID"`
	DriverToken         string        `envconfig:"DRIVER_TOKEN"`
	LocationRetryDelay  time.Duration `envconfig:"LOCATION_RETRY_DELAY" default:"5s"`
	LocationRetryWindow time.Duration `envconfig:"LOCATION_RETRY_WINDOW" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// GetDSN builds the MySQL DSN for sqlx and the migrator.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
