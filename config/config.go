package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable with EMPLOYEE_STORE.
const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
)

// Config holds the settings shared by the Lambda handler, the dev server and the seeder.
type Config struct {
	Environment string // development or production
	LogLevel    string

	Port           string   // dev server listen port
	Store          string   // memory or dynamodb
	AllowedOrigins []string // CORS origins for the dev server

	TableName           string // EMPLOYEE_TABLE_NAME
	DynamoDBEndpoint    string // optional endpoint override, e.g. DynamoDB Local
	FilterCaseSensitive bool   // legacy exact-case name matching for the in-memory store
}

// Load reads the dev server configuration from the environment.
func Load() (*Config, error) {
	cfg := fromViper(newViper("development"))

	switch cfg.Store {
	case StoreMemory:
	case StoreDynamoDB:
		if err := cfg.RequireTable(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("EMPLOYEE_STORE must be %q or %q, got %q", StoreMemory, StoreDynamoDB, cfg.Store)
	}

	return cfg, nil
}

// LoadLambda reads the serverless configuration. The table name is mandatory.
func LoadLambda() (*Config, error) {
	cfg := fromViper(newViper("production"))
	cfg.Store = StoreDynamoDB

	if err := cfg.RequireTable(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RequireTable fails when no DynamoDB table name is configured.
func (c *Config) RequireTable() error {
	if c.TableName == "" {
		return errors.New("the environment variable EMPLOYEE_TABLE_NAME is not specified")
	}
	return nil
}

// LoadDotEnv loads variables from the given files (".env" by default) without
// overriding the ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func newViper(environment string) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("environment", environment)
	v.SetDefault("log_level", "info")
	v.SetDefault("port", "8080")
	v.SetDefault("employee_store", StoreMemory)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000")
	v.SetDefault("filter_case_sensitive", false)

	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Environment:         v.GetString("environment"),
		LogLevel:            v.GetString("log_level"),
		Port:                v.GetString("port"),
		Store:               strings.ToLower(v.GetString("employee_store")),
		AllowedOrigins:      splitList(v.GetString("cors_allowed_origins")),
		TableName:           v.GetString("employee_table_name"),
		DynamoDBEndpoint:    v.GetString("dynamodb_endpoint"),
		FilterCaseSensitive: v.GetBool("filter_case_sensitive"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
