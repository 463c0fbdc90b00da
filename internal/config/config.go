package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultTableURLTemplate = "https://www.nco.ncep.noaa.gov/pmb/docs/grib2/grib2_doc/grib2_table4-2-{discipline}-{category}.shtml"

type Config struct {
	DBPath    string
	OutputDir string
	KeysFile  string

	TableURLTemplate string
	TimeoutMs        int
	RateLimitRPS     int
	UserAgent        string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "runs.db")),
		OutputDir: getEnv("OUTPUT_DIR", cwd),
		KeysFile:  getEnv("KEYS_FILE", ""),

		TableURLTemplate: getEnv("NCEP_TABLE_URL_TEMPLATE", DefaultTableURLTemplate),
		TimeoutMs:        getEnvInt("NCEP_TIMEOUT_MS", 30000),
		RateLimitRPS:     getEnvInt("NCEP_RATE_LIMIT_RPS", 2),
		UserAgent:        getEnv("NCEP_USER_AGENT", "gribdefs/1.0"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !strings.Contains(c.TableURLTemplate, "{discipline}") || !strings.Contains(c.TableURLTemplate, "{category}") {
		return fmt.Errorf("NCEP_TABLE_URL_TEMPLATE must contain {discipline} and {category}: %q", c.TableURLTemplate)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
