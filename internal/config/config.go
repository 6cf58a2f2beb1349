package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// HardMaxMonths предел срока, который нельзя поднять конфигурацией
const HardMaxMonths = 600

// HardMaxRate предел годовой ставки в процентах, который нельзя поднять конфигурацией
const HardMaxRate = 1000.0

// Config содержит конфигурацию сервера
type Config struct {
	Port                 int
	MaxPrincipal         float64
	MaxAdditionalPayment float64
	MaxMonths            int
	MaxRate              float64
	OTELEndpoint         string
	OTELServiceName      string
	LogLevel             string
	RedisAddr            string
	CacheTTL             time.Duration
	ShutdownTimeout      time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvInt("PORT", 8000),
		MaxPrincipal:         getEnvFloat("MAX_PRINCIPAL", 1e12),
		MaxAdditionalPayment: getEnvFloat("MAX_ADDITIONAL_PAYMENT", 1e12),
		MaxMonths:            getEnvInt("MAX_MONTHS", HardMaxMonths),
		MaxRate:              getEnvFloat("MAX_RATE", HardMaxRate),
		OTELEndpoint:         getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:      getEnvString("OTEL_SERVICE_NAME", "loan-engine"),
		LogLevel:             getEnvString("LOG_LEVEL", "INFO"),
		RedisAddr:            getEnvString("REDIS_ADDR", ""),
		CacheTTL:             getEnvDuration("CACHE_TTL", 10*time.Minute),
		ShutdownTimeout:      getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию по умолчанию без чтения окружения
func Default() *Config {
	return &Config{
		Port:                 8000,
		MaxPrincipal:         1e12,
		MaxAdditionalPayment: 1e12,
		MaxMonths:            HardMaxMonths,
		MaxRate:              HardMaxRate,
		OTELServiceName:      "loan-engine",
		LogLevel:             "INFO",
		CacheTTL:             10 * time.Minute,
		ShutdownTimeout:      10 * time.Second,
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.MaxMonths < 1 || c.MaxMonths > HardMaxMonths {
		return fmt.Errorf("MAX_MONTHS must be in [1; %d], got %d", HardMaxMonths, c.MaxMonths)
	}
	// сравнения с NaN ложны, поэтому условия записаны через отрицание
	if !(c.MaxRate > 0 && c.MaxRate <= HardMaxRate) {
		return fmt.Errorf("MAX_RATE must be in (0; %g], got %v", HardMaxRate, c.MaxRate)
	}
	if !(c.MaxPrincipal > 0) || math.IsInf(c.MaxPrincipal, 1) {
		return fmt.Errorf("MAX_PRINCIPAL must be a positive number, got %v", c.MaxPrincipal)
	}
	if !(c.MaxAdditionalPayment >= 0) || math.IsInf(c.MaxAdditionalPayment, 1) {
		return fmt.Errorf("MAX_ADDITIONAL_PAYMENT must be a non-negative number, got %v", c.MaxAdditionalPayment)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// Addr адрес HTTP сервера
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// PrincipalLimit максимальная сумма кредита или стоимость имущества
func (c *Config) PrincipalLimit() float64 { return c.MaxPrincipal }

// RateLimit максимальная годовая ставка в процентах
func (c *Config) RateLimit() float64 { return c.MaxRate }

// MonthsLimit максимальный срок в месяцах
func (c *Config) MonthsLimit() int { return c.MaxMonths }

// AdditionalPaymentLimit максимальный ежемесячный досрочный платеж
func (c *Config) AdditionalPaymentLimit() float64 { return c.MaxAdditionalPayment }
