package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Redis    RedisConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration. Tokens are issued by the HR platform;
// this service only verifies them.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PAYEBracket is one row of PAYE_BRACKETS.
type PAYEBracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// PayrollConfig carries the statutory schedule and the pay policy.
type PayrollConfig struct {
	PAYEBrackets       []PAYEBracket
	PAYEExemptAmount   decimal.Decimal
	NASSITEmployeeRate decimal.Decimal
	NASSITEmployerRate decimal.Decimal
	NASSITCeiling      *decimal.Decimal

	WeeklyDivisor        decimal.Decimal
	BiWeeklyDivisor      decimal.Decimal
	StandardMonthlyHours decimal.Decimal
	HoursPerDay          decimal.Decimal
	OvertimeMultiplier   decimal.Decimal
	WeekendMultiplier    decimal.Decimal
	HolidayMultiplier    decimal.Decimal
	StrictRates          bool

	CommitConcurrency int
	LockTTL           time.Duration
}

// RedisConfig is optional. An empty URL selects the in-process period lock.
type RedisConfig struct {
	URL         string
	PoolSize    int
	DialTimeout time.Duration
}

type CronConfig struct {
	Enabled            bool
	RetrySweepInterval time.Duration
}

const defaultPAYEBrackets = "0:0,600000:0.15,1200000:0.2,1800000:0.25,2400000:0.3"

func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	payrollConfig, err := loadPayroll()
	if err != nil {
		return nil, err
	}
	config.Payroll = payrollConfig

	// Redis configuration
	redisPool, err := getEnvInt("REDIS_POOL_SIZE", 0)
	if err != nil {
		return nil, err
	}
	redisDial, err := getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	config.Redis = RedisConfig{
		URL:         getEnv("REDIS_URL", ""),
		PoolSize:    redisPool,
		DialTimeout: redisDial,
	}

	// Cron configuration
	cronEnabled, err := getEnvBool("CRON_ENABLED", true)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvDuration("CRON_RETRY_SWEEP_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	config.Cron = CronConfig{
		Enabled:            cronEnabled,
		RetrySweepInterval: sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	var (
		p   PayrollConfig
		err error
	)

	if p.PAYEBrackets, err = ParseBrackets(getEnv("PAYE_BRACKETS", defaultPAYEBrackets)); err != nil {
		return PayrollConfig{}, err
	}

	decimals := []struct {
		key      string
		fallback string
		dst      *decimal.Decimal
	}{
		{"PAYE_EXEMPT_ALLOWANCE", "0", &p.PAYEExemptAmount},
		{"NASSIT_EMPLOYEE_RATE", "0.05", &p.NASSITEmployeeRate},
		{"NASSIT_EMPLOYER_RATE", "0.10", &p.NASSITEmployerRate},
		{"PRORATE_WEEKLY_DIVISOR", "4.33", &p.WeeklyDivisor},
		{"PRORATE_BIWEEKLY_DIVISOR", "2.165", &p.BiWeeklyDivisor},
		{"STANDARD_MONTHLY_HOURS", "160", &p.StandardMonthlyHours},
		{"HOURS_PER_DAY", "8", &p.HoursPerDay},
		{"OVERTIME_MULTIPLIER", "1.5", &p.OvertimeMultiplier},
		{"WEEKEND_MULTIPLIER", "2.0", &p.WeekendMultiplier},
		{"HOLIDAY_MULTIPLIER", "2.5", &p.HolidayMultiplier},
	}
	for _, d := range decimals {
		if *d.dst, err = getEnvDecimal(d.key, d.fallback); err != nil {
			return PayrollConfig{}, err
		}
	}

	if raw := getEnv("NASSIT_CEILING", ""); raw != "" {
		ceiling, err := decimal.NewFromString(raw)
		if err != nil {
			return PayrollConfig{}, fmt.Errorf("invalid NASSIT_CEILING: %w", err)
		}
		p.NASSITCeiling = &ceiling
	}

	if p.StrictRates, err = getEnvBool("PAYROLL_STRICT_RATES", true); err != nil {
		return PayrollConfig{}, err
	}
	if p.CommitConcurrency, err = getEnvInt("PAYROLL_COMMIT_CONCURRENCY", 4); err != nil {
		return PayrollConfig{}, err
	}
	if p.LockTTL, err = getEnvDuration("PAYROLL_LOCK_TTL", 5*time.Minute); err != nil {
		return PayrollConfig{}, err
	}

	return p, nil
}

// ParseBrackets reads "threshold:rate" pairs separated by commas.
func ParseBrackets(raw string) ([]PAYEBracket, error) {
	var brackets []PAYEBracket
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		threshold, rate, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid PAYE_BRACKETS entry %q: want threshold:rate", pair)
		}
		t, err := decimal.NewFromString(strings.TrimSpace(threshold))
		if err != nil {
			return nil, fmt.Errorf("invalid PAYE_BRACKETS threshold %q: %w", threshold, err)
		}
		r, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return nil, fmt.Errorf("invalid PAYE_BRACKETS rate %q: %w", rate, err)
		}
		brackets = append(brackets, PAYEBracket{Threshold: t, Rate: r})
	}
	if len(brackets) == 0 {
		return nil, fmt.Errorf("PAYE_BRACKETS must contain at least one bracket")
	}
	return brackets, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.CommitConcurrency < 1 {
		return fmt.Errorf("PAYROLL_COMMIT_CONCURRENCY must be at least 1")
	}
	if c.Payroll.LockTTL <= 0 {
		return fmt.Errorf("PAYROLL_LOCK_TTL must be positive")
	}
	if c.Cron.Enabled && c.Cron.RetrySweepInterval <= 0 {
		return fmt.Errorf("CRON_RETRY_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
