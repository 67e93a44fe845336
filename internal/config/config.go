// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
	BaseURL        string
}

type AppConfig struct {
	DataDir        string
	ModelPath      string
	Timezone       string
	FileTTLSeconds int
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	AnalyticsTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("SERVER_BASE_URL", "http://localhost:8080")
		viper.SetDefault("APP_DATA_DIR", "./data")
		viper.SetDefault("APP_MODEL_PATH", "./models/demand_model.json")
		viper.SetDefault("APP_TIMEZONE", "Asia/Tokyo")
		viper.SetDefault("APP_FILE_TTL_SECONDS", 3600)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ANALYTICS_TTL_SECONDS", 60)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
				BaseURL:        viper.GetString("SERVER_BASE_URL"),
			},
			App: AppConfig{
				DataDir:        viper.GetString("APP_DATA_DIR"),
				ModelPath:      viper.GetString("APP_MODEL_PATH"),
				Timezone:       viper.GetString("APP_TIMEZONE"),
				FileTTLSeconds: viper.GetInt("APP_FILE_TTL_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				AnalyticsTTLSeconds: viper.GetInt("CACHE_ANALYTICS_TTL_SECONDS"),
			},
		}
	})

	return instance
}
