package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"Storefront/kvstore"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	// login attempts per second and burst
	LoginRate  float64 `yaml:"loginRate"`
	LoginBurst int     `yaml:"loginBurst"`
}

type StoreConfig struct {
	// memory, redis or mysql
	Driver    string `yaml:"driver"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	DSN      string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type NotifyConfig struct {
	Lifetime time.Duration `yaml:"lifetime"`
}

type BootstrapConfig struct {
	AdminName     string `yaml:"adminName"`
	AdminEmail    string `yaml:"adminEmail"`
	AdminPassword string `yaml:"adminPassword"`
	AdminPhone    string `yaml:"adminPhone"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Notify    NotifyConfig    `yaml:"notify"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"*"},
			LoginRate:      1,
			LoginBurst:     5,
		},
		Store: StoreConfig{Driver: "memory"},
		Redis: RedisConfig{Addr: "localhost:6379", Timeout: 2 * time.Second},
		Log:   LogConfig{Level: "info", Pretty: true},
		Notify: NotifyConfig{
			Lifetime: 3 * time.Second,
		},
		Bootstrap: BootstrapConfig{
			AdminName:     "Admin",
			AdminEmail:    "admin123@gmail.com",
			AdminPassword: "Admin@123",
			AdminPhone:    "0000000000",
		},
	}
}

// LoadConfig reads filename over the defaults. A missing file is not an
// error. Environment variables (optionally from .env) override the file.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	_ = godotenv.Load()

	file, err := os.Open(filename)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, err
	}
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if v := os.Getenv("STOREFRONT_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("STOREFRONT_STORE"); v != "" {
		config.Store.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		config.Redis.Database = n
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		config.Database.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	return nil
}

func (c DatabaseConfig) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func SetupMySQLConnection(config Config) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(config.Database.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func SetupRedisConnection(config Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})
}

// SetupStore opens the configured key-value backend. The returned function
// releases its connections.
func SetupStore(config Config, log zerolog.Logger) (kvstore.Store, func(), error) {
	switch config.Store.Driver {
	case "", "memory":
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return kvstore.NewMemory(), func() {}, nil
	case "redis":
		rdb := SetupRedisConnection(config)
		log.Info().Str("addr", config.Redis.Addr).Msg("Using redis store")
		return kvstore.NewRedisStore(rdb, config.Store.KeyPrefix, config.Redis.Timeout), func() { _ = rdb.Close() }, nil
	case "mysql":
		db, err := SetupMySQLConnection(config)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewSQLStore(db)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("host", config.Database.Host).Msg("Using mysql store")
		return store, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}
}
