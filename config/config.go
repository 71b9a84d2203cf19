package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration. Values come from the
// environment (optionally seeded from .env) and can be overridden by flags.
type Config struct {
	DataDir     string
	OutputDir   string
	InputFormat string
	LogLevel    string
	PrintReport bool

	DatabaseType string
	SQLitePath   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	DBMaxRetries   int
	DBRetryDelayMs int
}

// Load reads the .env file, the environment and then args.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		DataDir:     getEnv("DATA_DIR", "./data"),
		OutputDir:   getEnv("OUTPUT_DIR", "./output"),
		InputFormat: getEnv("INPUT_FORMAT", "csv"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		PrintReport: getEnvBool("PRINT_REPORT", true),

		DatabaseType: getEnv("DATABASE_TYPE", ""),
		SQLitePath:   getEnv("SQLITE_PATH", "./output/vote_tally.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "tally"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "tally"),
		PostgresDB:       getEnv("POSTGRES_DB", "vote_tally"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		DBMaxRetries:   getEnvInt("DB_MAX_RETRIES", 3),
		DBRetryDelayMs: getEnvInt("DB_RETRY_DELAY_MS", 1000),
	}

	fs := flag.NewFlagSet("vote-tally", flag.ContinueOnError)
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding the input tables")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Directory receiving the summary tables")
	fs.StringVar(&cfg.InputFormat, "format", cfg.InputFormat, "Input file format (csv or json)")
	fs.StringVar(&cfg.DatabaseType, "db", cfg.DatabaseType, "Also mirror summaries to a database (postgres or sqlite)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.PrintReport, "report", cfg.PrintReport, "Print a summary after writing outputs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.InputFormat = strings.ToLower(strings.TrimSpace(c.InputFormat))
	switch c.InputFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("config: unsupported input format %q", c.InputFormat)
	}

	c.DatabaseType = strings.ToLower(strings.TrimSpace(c.DatabaseType))
	switch c.DatabaseType {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported database type %q", c.DatabaseType)
	}

	if c.DBMaxRetries < 1 {
		return fmt.Errorf("config: DB_MAX_RETRIES must be at least 1")
	}
	return nil
}

// InputPath returns the path of the named input table in DataDir.
func (c *Config) InputPath(table string) string {
	return filepath.Join(c.DataDir, table+"."+c.InputFormat)
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
