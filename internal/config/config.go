package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	ValidityPolicy  string
	CategoryLabel89 string
	CategoryLabel90 string

	EnablePDFExport   bool
	SofficePath       string
	PDFTimeoutMs      int
	EnableSeasonality bool

	SeasonalityAPIBaseURL  string
	SeasonalityAPIToken    string
	SeasonalityIntervalMs  int
	SeasonalityTimeoutMs   int
	SeasonalityAlertLevels []string

	HTTPAddr string

	WatchInboxDir    string
	WatchIntervalSec int
}

const (
	PolicyRolling14 = "rolling14"
	PolicyHalfMonth = "halfmonth"
)

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		ValidityPolicy:  getEnv("VALIDITY_POLICY", PolicyRolling14),
		CategoryLabel89: getEnv("CATEGORY_LABEL_89", "Quartil"),
		CategoryLabel90: getEnv("CATEGORY_LABEL_90", "Contrato"),

		EnablePDFExport:   getEnvBool("ENABLE_PDF_EXPORT", false),
		SofficePath:       getEnv("SOFFICE_PATH", "soffice"),
		PDFTimeoutMs:      getEnvInt("PDF_TIMEOUT_MS", 60000),
		EnableSeasonality: getEnvBool("ENABLE_SEASONALITY_PANEL", false),

		SeasonalityAPIBaseURL:  getEnv("SEASONALITY_API_BASE_URL", ""),
		SeasonalityAPIToken:    getEnv("SEASONALITY_API_TOKEN", ""),
		SeasonalityIntervalMs:  getEnvInt("SEASONALITY_REQUEST_INTERVAL_MS", 200),
		SeasonalityTimeoutMs:   getEnvInt("SEASONALITY_TIMEOUT_MS", 30000),
		SeasonalityAlertLevels: getEnvList("SEASONALITY_ALERT_LEVELS", []string{"BAIXA", "FALTA"}),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		WatchInboxDir:    getEnv("WATCH_INBOX_DIR", filepath.Join(cwd, "inbox")),
		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 30),
	}

	switch cfg.ValidityPolicy {
	case PolicyRolling14, PolicyHalfMonth:
	default:
		return Config{}, fmt.Errorf("unsupported VALIDITY_POLICY: %s", cfg.ValidityPolicy)
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
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

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
