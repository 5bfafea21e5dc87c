package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultPath = "config/config.yaml"

type LogConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"` // json | console
	Development bool   `yaml:"development"`
}

type StoreConfig struct {
	Driver   string        `yaml:"driver"` // postgres | mongo | memory
	Timeout  time.Duration `yaml:"timeout"`
	Location string        `yaml:"location"` // timezone for exported dates
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	// NotifyTo receives wake-ups for advisors missing from Advisors.
	NotifyTo string            `yaml:"notify_to"`
	Advisors map[string]string `yaml:"advisors"` // asesor -> email
}

type TelegramConfig struct {
	BotToken string  `yaml:"bot_token"`
	ChatIDs  []int64 `yaml:"chat_ids"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type CronConfig struct {
	Enabled     bool   `yaml:"enabled"`
	WakeExpired string `yaml:"wake_expired"`
}

type ReportsConfig struct {
	FontPath string `yaml:"font_path"` // optional UTF-8 TTF for PDFs
}

type PolicyConfig struct {
	DefaultDiscount float64 `yaml:"default_discount"`
}

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		Mode            string        `yaml:"mode"` // debug | release
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Cron     CronConfig     `yaml:"cron"`
	Policy   PolicyConfig   `yaml:"policy"`
	Reports  ReportsConfig  `yaml:"reports"`
}

// LoadConfig reads PIZO_CONFIG (default config/config.yaml) and panics on
// failure; the service cannot start without it.
func LoadConfig() *Config {
	path := os.Getenv("PIZO_CONFIG")
	if path == "" {
		path = defaultPath
	}
	cfg, err := Load(path)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Load parses the yaml file at path, then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PIZO_DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PIZO_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("PIZO_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("PIZO_SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("PIZO_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("PIZO_RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
	if v := os.Getenv("PIZO_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("PIZO_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "json"
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "postgres"
	}
	if cfg.Store.Timeout == 0 {
		cfg.Store.Timeout = 10 * time.Second
	}
	if cfg.Store.Location == "" {
		cfg.Store.Location = "America/Mexico_City"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "pizo"
	}
	if cfg.RabbitMQ.Exchange == "" {
		cfg.RabbitMQ.Exchange = "ex.crm.leads"
	}
	if cfg.Cron.WakeExpired == "" {
		cfg.Cron.WakeExpired = "@every 15m"
	}
	if cfg.Policy.DefaultDiscount == 0 {
		cfg.Policy.DefaultDiscount = 35
	}
}
