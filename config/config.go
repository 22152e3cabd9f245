package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LineItemPolicy controls what happens to a cart's stored line items when the
// same cart is loaded again.
type LineItemPolicy string

const (
	// LineItemAppend inserts line items unconditionally; reruns accumulate rows.
	LineItemAppend LineItemPolicy = "append"
	// LineItemReplace deletes a cart's existing line items before inserting.
	LineItemReplace LineItemPolicy = "replace"
)

// Config holds every runtime setting. It is built once at process start and
// passed down; nothing reads the environment after Load returns.
type Config struct {
	DBHost     string
	DBName     string
	DBUser     string
	DBPassword string
	DBPort     string

	SourceBaseURL string
	PageSize      int

	Port string

	LineItemPolicy LineItemPolicy
}

// Load reads the environment, falling back to the same defaults the docker
// compose setup provides.
func Load() Config {
	return Config{
		DBHost:         getEnv("POSTGRES_HOST", "postgres"),
		DBName:         getEnv("POSTGRES_DB", "axonedata"),
		DBUser:         getEnv("POSTGRES_USER", "postgres"),
		DBPassword:     getEnv("POSTGRES_PASSWORD", "postgres"),
		DBPort:         getEnv("POSTGRES_PORT", "5432"),
		SourceBaseURL:  getEnv("SOURCE_BASE_URL", "https://dummyjson.com"),
		PageSize:       getEnvInt("PAGE_SIZE", 100),
		Port:           getEnv("PORT", "8080"),
		LineItemPolicy: parsePolicy(os.Getenv("LINE_ITEM_POLICY")),
	}
}

// DSN renders the connection string for the postgres gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func parsePolicy(v string) LineItemPolicy {
	if strings.EqualFold(strings.TrimSpace(v), string(LineItemReplace)) {
		return LineItemReplace
	}
	return LineItemAppend
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
