package config

import (
	"os"
	"shortlink-service/internal/shortcode"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Config struct {
	Port   string
	Domain string
	DB     DBConfig
	Redis  RedisConfig
	Code   CodeConfig

	RateLimit int64

	KafkaBrokers []string
	KafkaTopic   string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CodeConfig struct {
	Strategy shortcode.Strategy
	Length   int
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:   getEnv("APP_PORT", log),
		Domain: getEnv("DOMAIN", log),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", log),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0, log),
		},
		Code: CodeConfig{
			Strategy: parseStrategy(getEnvDefault("CODE_STRATEGY", string(shortcode.StrategyHashA)), log),
			Length:   getEnvInt("CODE_LENGTH", shortcode.DefaultLength, log),
		},
		RateLimit: int64(getEnvInt("RATE_LIMIT_PER_MINUTE", 100, log)),

		// Kafka опциональна: без брокеров события кликов не публикуются
		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_CLICKS", "shortlink.clicks"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func getEnvInt(key string, def int, log *zap.Logger) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Error("Некорректное числовое значение переменной окружения",
			zap.String("key", key), zap.String("value", val))
		panic("invalid integer environment variable: " + key)
	}
	return n
}

func parseStrategy(s string, log *zap.Logger) shortcode.Strategy {
	strategy, err := shortcode.ParseStrategy(s)
	if err != nil {
		log.Error("Неизвестная стратегия генерации кода", zap.String("strategy", s))
		panic("unknown code generation strategy: " + s)
	}
	return strategy
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
