package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	OutputDir string

	// ColorwayTablePath points at an optional CSV of code,name pairs
	// merged over the built-in known-colorway seed.
	ColorwayTablePath string

	// CriticalFields lists enriched fields of which at least one must
	// fill for a row to escape an Error verdict.
	CriticalFields []string

	// StyleFallback stamps extracted records when the PDF header
	// carries no Style line.
	StyleFallback string

	ValidateWorkers int
	ExportFormat    string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		OutputDir:         getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ColorwayTablePath: getEnv("COLORWAY_TABLE", ""),
		CriticalFields:    getEnvList("CRITICAL_FIELDS", []string{"trim_supplier", "label_supplier"}),
		StyleFallback:     getEnv("BOM_STYLE_FALLBACK", ""),
		ValidateWorkers:   getEnvInt("VALIDATE_WORKERS", 4),
		ExportFormat:      getEnv("EXPORT_FORMAT", "xlsx"),
	}

	return cfg, nil
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
