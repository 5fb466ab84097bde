package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	SavedQueries SavedQueriesConfig
	Seed         SeedConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SavedQueriesConfig struct {
	Backend string
	Path    string
	Key     string
}

type SeedConfig struct {
	DefaultCount int
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SavedQueriesBackendFile  = "file"
	SavedQueriesBackendRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "db-prs.sqlite")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "patients")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SAVED_QUERIES_BACKEND", SavedQueriesBackendFile)
	v.SetDefault("SAVED_QUERIES_PATH", "saved-queries.json")
	v.SetDefault("SAVED_QUERIES_KEY", "userQueries")

	v.SetDefault("SEED_DEFAULT_COUNT", 10)
}

// LoadConfig reads the given env file (a missing file is fine) and the
// process environment, environment values taking precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SavedQueries: SavedQueriesConfig{
			Backend: strings.ToLower(v.GetString("SAVED_QUERIES_BACKEND")),
			Path:    v.GetString("SAVED_QUERIES_PATH"),
			Key:     v.GetString("SAVED_QUERIES_KEY"),
		},
		Seed: SeedConfig{
			DefaultCount: v.GetInt("SEED_DEFAULT_COUNT"),
		},
	}
}

// WatchLogLevel re-applies LOG_LEVEL whenever the env file changes.
func WatchLogLevel(path string, log *logrus.Logger) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.Debugf("Config file not watched: %+v", err)
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level, err := logrus.ParseLevel(v.GetString("LOG_LEVEL"))
		if err != nil {
			log.Warnf("Ignoring invalid LOG_LEVEL after config change: %+v", err)
			return
		}
		log.SetLevel(level)
		log.Infof("Log level set to %s", level)
	})
	v.WatchConfig()
}
