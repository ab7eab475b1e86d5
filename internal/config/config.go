package config

import (
	"os"
	"strconv"
	"strings"

	"Iris_Blog/internal/pkg"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	LogLevel      string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	KafkaTopic    string
	// 重置链接的站点地址
	BaseURL string
	SMTP    pkg.SMTPConfig
}

// Load 读取 .env（不存在则忽略）和环境变量
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:      getEnv("IRIS_HTTP_ADDR", ":8080"),
		LogLevel:      getEnv("IRIS_LOG_LEVEL", "info"),
		DBDSN:         getEnv("IRIS_DB_DSN", "user:password@tcp(127.0.0.1:3306)/iris_blog?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getEnv("IRIS_REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("IRIS_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("IRIS_REDIS_DB", 0),
		KafkaBrokers:  kafkaBrokers(),
		KafkaTopic:    getEnv("IRIS_KAFKA_TOPIC", "iris.search.events"),
		BaseURL:       getEnv("IRIS_BASE_URL", "http://127.0.0.1:8080"),
		SMTP: pkg.SMTPConfig{
			Host:     getEnv("IRIS_SMTP_HOST", "127.0.0.1"),
			Port:     getEnvInt("IRIS_SMTP_PORT", 587),
			Username: getEnv("IRIS_SMTP_USERNAME", ""),
			Password: getEnv("IRIS_SMTP_PASSWORD", ""),
			From:     getEnv("IRIS_SMTP_FROM", "NoReply <no-reply@example.com>"),
		},
	}
	return cfg, nil
}

// IRIS_KAFKA_BROKERS 显式置空表示不接 kafka，outbox 投递退化为日志输出
func kafkaBrokers() []string {
	v, ok := os.LookupEnv("IRIS_KAFKA_BROKERS")
	if !ok {
		return []string{"127.0.0.1:9092"}
	}
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
