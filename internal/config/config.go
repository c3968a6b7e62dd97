package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	JWTSecret    string
	JWTTTLHours  int
	IdempTTLSecs int

	// Daraja (M-Pesa) credentials. BaseURL switches sandbox vs production.
	MpesaBaseURL     string
	MpesaConsumerKey string
	MpesaSecret      string
	MpesaShortCode   string
	MpesaPassKey     string
	MpesaCallbackURL string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "estate"),
		MySQLUser: getenv("MYSQL_USER", "estate"),
		MySQLPass: getenv("MYSQL_PASS", "estate"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: getenv("REDIS_PASS", ""),
		RedisDB:   getenvInt("REDIS_DB", 0),

		JWTSecret:    getenv("JWT_SECRET", ""),
		JWTTTLHours:  getenvInt("JWT_TTL_HOURS", 24),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		MpesaBaseURL:     getenv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
		MpesaConsumerKey: getenv("MPESA_CONSUMER_KEY", ""),
		MpesaSecret:      getenv("MPESA_CONSUMER_SECRET", ""),
		MpesaShortCode:   getenv("MPESA_SHORTCODE", "174379"),
		MpesaPassKey:     getenv("MPESA_PASSKEY", ""),
		MpesaCallbackURL: getenv("MPESA_CALLBACK_URL", ""),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.MpesaConsumerKey == "" || c.MpesaSecret == "" || c.MpesaPassKey == "" {
		return errors.New("missing M-Pesa config (MPESA_CONSUMER_KEY/CONSUMER_SECRET/PASSKEY)")
	}
	if c.MpesaCallbackURL == "" {
		return errors.New("missing MPESA_CALLBACK_URL")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
