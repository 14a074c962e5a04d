package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // Access token lifetime in minutes
		RefreshTTL int    `yaml:"refresh_ttl"` // Refresh token lifetime in hours
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"`           // Max file size in bytes
		AllowedExtensions []string `yaml:"allowed_extensions"` // e.g. [".py"]
	} `yaml:"upload"`

	Checker struct {
		Binary         string `yaml:"binary"`          // Lint tool binary, e.g. "flake8"
		TimeoutSeconds int    `yaml:"timeout_seconds"` // Deadline for one lint run
		Schedule       string `yaml:"schedule"`        // Cron spec for the periodic scan
	} `yaml:"checker"`

	Jobs struct {
		QueueSize int `yaml:"queue_size"`
		Workers   int `yaml:"workers"`
	} `yaml:"jobs"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment-variable mode, used by tests and containers.
	log.Println("Loading configuration from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "reports@codecheck.local"
	cfg.Email.FromName = "Code Check"

	cfg.Storage.BasePath = "./uploads"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 7
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 1 << 20 // a source file has no business being bigger
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{".py"}
	}
	if cfg.Checker.Binary == "" {
		cfg.Checker.Binary = "flake8"
	}
	if cfg.Checker.TimeoutSeconds == 0 {
		cfg.Checker.TimeoutSeconds = 60
	}
	if cfg.Checker.Schedule == "" {
		cfg.Checker.Schedule = "0 20 * * *"
	}
	if cfg.Jobs.QueueSize == 0 {
		cfg.Jobs.QueueSize = 64
	}
	if cfg.Jobs.Workers == 0 {
		cfg.Jobs.Workers = 2
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
