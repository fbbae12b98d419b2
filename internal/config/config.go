package config

import (
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort     string   `yaml:"serverPort"`
	AllowedOrigins []string `yaml:"allowedOrigins"`

	DB      DBConfig      `yaml:"db"`
	Uploads UploadsConfig `yaml:"uploads"`
	Admin   AdminConfig   `yaml:"admin"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
}

type DBConfig struct {
	Driver     string `yaml:"driver"` // postgres|sqlite
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SQLitePath string `yaml:"sqlitePath"`
	LogLevel   string `yaml:"logLevel"` // silent|error|warn|info
}

type UploadsConfig struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"urlPrefix"`
	MaxBytes  int64  `yaml:"maxBytes"`
}

type AdminConfig struct {
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
	JWTSecret    string `yaml:"jwtSecret"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type LoggingConfig struct {
	Env       string `yaml:"env"`     // dev|stage|prod
	Backend   string `yaml:"backend"` // std|zap
	Level     string `yaml:"level"`
	Service   string `yaml:"service"`
	Version   string `yaml:"version"`
	AddSource bool   `yaml:"addSource"`
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		AllowedOrigins: []string{"*"},
		DB: DBConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Password:   "postgres",
			Name:       "quiztotem",
			SQLitePath: "totem.db",
			LogLevel:   "warn",
		},
		Uploads: UploadsConfig{
			Dir:       "public/uploads",
			URLPrefix: "/uploads",
			MaxBytes:  10 << 20,
		},
		Admin: AdminConfig{
			Password:  "admin-change-me",
			JWTSecret: "super-secret-key-change-me",
		},
		Redis: RedisConfig{
			Channel: "totem:events",
		},
		Logging: LoggingConfig{
			Service: "quiz-totem",
			Version: "v0.1.0",
			Level:   "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// environment variables and finally command line flags.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("quiz-totem", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (or CONFIG_PATH)")
	port := fs.String("port", "", "HTTP port (or SERVER_PORT)")
	envFile := fs.String("env-file", ".env", "dotenv file merged into the environment when present")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Variables already set in the environment win over the dotenv file.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := defaults()

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if *port != "" {
		cfg.ServerPort = *port
	}
	cfg.AllowedOrigins = trimList(cfg.AllowedOrigins)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = strings.Split(origins, ",")
	}

	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)
	c.DB.SQLitePath = getEnv("SQLITE_PATH", c.DB.SQLitePath)
	c.DB.LogLevel = getEnv("DB_LOG_LEVEL", c.DB.LogLevel)

	c.Uploads.Dir = getEnv("UPLOAD_DIR", c.Uploads.Dir)
	c.Uploads.URLPrefix = getEnv("UPLOAD_URL_PREFIX", c.Uploads.URLPrefix)
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Uploads.MaxBytes = n
		}
	}

	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)
	c.Admin.PasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.Admin.PasswordHash)
	c.Admin.JWTSecret = getEnv("JWT_SECRET", c.Admin.JWTSecret)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.Channel = getEnv("REDIS_CHANNEL", c.Redis.Channel)
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}

	c.Logging.Env = getEnv("APP_ENV", c.Logging.Env)
	c.Logging.Backend = getEnv("LOG_BACKEND", c.Logging.Backend)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.ServerPort == "" {
		return errors.New("server port is required")
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("at least one allowed origin is required")
	}
	if c.Uploads.Dir == "" || c.Uploads.URLPrefix == "" {
		return errors.New("uploads.dir and uploads.urlPrefix are required")
	}
	if c.Uploads.MaxBytes <= 0 {
		return errors.New("uploads.maxBytes must be positive")
	}
	if c.Admin.JWTSecret == "" {
		return errors.New("admin.jwtSecret is required")
	}
	if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
		return errors.New("admin password or password hash is required")
	}
	return nil
}

// trimList drops surrounding spaces and empty entries.
func trimList(items []string) []string {
	return lo.FilterMap(items, func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

// DSN returns the postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
