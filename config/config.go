// Package config loads the service settings from the environment. A .env file
// in the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Database struct {
	Driver   string
	User     string
	Password string
	Host     string
	Name     string
	// DSN is used as-is for postgres and as the file path for sqlite.
	DSN string
}

// ConnString returns what the gorm dialector for Driver expects.
func (d Database) ConnString() string {
	switch d.Driver {
	case DriverMySQL:
		if d.DSN != "" {
			return d.DSN
		}
		c := mysql.NewConfig()
		c.User = d.User
		c.Passwd = d.Password
		c.Net = "tcp"
		c.Addr = d.Host
		c.DBName = d.Name
		c.ParseTime = true
		c.Params = map[string]string{"charset": "utf8mb4"}
		return c.FormatDSN()
	case DriverPostgres:
		if d.DSN != "" {
			return d.DSN
		}
		host, port := d.Host, "5432"
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host, port = host[:i], host[i+1:]
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, d.User, d.Password, d.Name)
	default:
		return d.DSN
	}
}

type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Database Database

	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string

	AllowLastAdminDemotion bool
	MemberRemovalPolicy    string
	RejectOverContribution bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	var errs []error
	cfg := &Config{
		Addr:      getEnv("APP_ADDR", ":8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Database: Database{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getEnv("DB_HOST", "127.0.0.1:3306"),
			Name:     getEnv("DB_NAME", "household"),
			DSN:      os.Getenv("DB_DSN"),
		},
		MemberRemovalPolicy: strings.ToLower(getEnv("MEMBER_REMOVAL_POLICY", "unclaim")),
	}

	cfg.ReadTimeout = durationEnv("READ_TIMEOUT", 10*time.Second, &errs)
	cfg.WriteTimeout = durationEnv("WRITE_TIMEOUT", 10*time.Second, &errs)
	cfg.TokenTTL = durationEnv("TOKEN_TTL", 30*time.Minute, &errs)
	cfg.AllowLastAdminDemotion = boolEnv("ALLOW_LAST_ADMIN_DEMOTION", true, &errs)
	cfg.RejectOverContribution = boolEnv("REJECT_OVER_CONTRIBUTION", false, &errs)

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres:
	case DriverSQLite:
		if cfg.Database.DSN == "" {
			cfg.Database.DSN = "./data/household.db"
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of mysql, postgres, sqlite", cfg.Database.Driver))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}
