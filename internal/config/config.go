package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Backend  BackendConfig  `json:"backend"`
	Gateway  GatewayConfig  `json:"gateway"`
	Kafka    KafkaConfig    `json:"kafka"`
	Checkout CheckoutConfig `json:"checkout"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// BackendConfig points at the LMS backend API that owns enrollments,
// payments and authentication.
type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// GatewayConfig points at the payment gateway's confirmation endpoint.
// The gateway is an opaque external service; only the base URL and the
// timeout are ours to configure.
type GatewayConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type KafkaConfig struct {
	Brokers string `json:"brokers"`
	Topic   string `json:"topic"`
}

// CheckoutConfig carries the hold-freshness window. The backend expires
// enrollment holds after HoldTTLMinutes; FreshnessWindowMinutes is the
// conservative client-side sub-window used to gate submissions. The
// defaults (15/10) leave a five-minute buffer for network latency.
type CheckoutConfig struct {
	HoldTTLMinutes         int `json:"hold_ttl_minutes"`
	FreshnessWindowMinutes int `json:"freshness_window_minutes"`
	OTPResendCooldownSecs  int `json:"otp_resend_cooldown_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("GATEWAY_BASE_URL"); v != "" {
		c.Gateway.BaseURL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = 30
	}
	if c.Checkout.HoldTTLMinutes == 0 {
		c.Checkout.HoldTTLMinutes = 15
	}
	if c.Checkout.FreshnessWindowMinutes == 0 {
		c.Checkout.FreshnessWindowMinutes = 10
	}
	if c.Checkout.OTPResendCooldownSecs == 0 {
		c.Checkout.OTPResendCooldownSecs = 60
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "purchases.completed"
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *CheckoutConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

func (c *CheckoutConfig) FreshnessWindow() time.Duration {
	return time.Duration(c.FreshnessWindowMinutes) * time.Minute
}

func (c *CheckoutConfig) OTPResendCooldown() time.Duration {
	return time.Duration(c.OTPResendCooldownSecs) * time.Second
}
