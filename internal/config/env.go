package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Fprintf(os.Stderr, "✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// applyEnv overrides settings with any SCRIBE_*, provider and MinIO variables that are set
func applyEnv(s *Settings) error {
	setString(&s.Endpoint, "SCRIBE_ENDPOINT")

	setString(&s.Server.Host, "SCRIBE_HOST")
	setString(&s.Server.Port, "SCRIBE_PORT")
	setString(&s.Server.Environment, "SCRIBE_ENV")
	if raw, ok := lookup("SCRIBE_API_TOKENS"); ok {
		s.Server.APITokens = SplitList(raw)
	}
	if raw, ok := lookup("SCRIBE_MAX_UPLOAD_MB"); ok {
		mb, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SCRIBE_MAX_UPLOAD_MB: %w", err)
		}
		s.Server.MaxUploadMB = mb
	}

	setString(&s.Provider.Name, "SCRIBE_PROVIDER")
	setString(&s.Provider.Model, "SCRIBE_MODEL")
	setString(&s.Provider.Prompt, "SCRIBE_PROMPT")
	setString(&s.Provider.BaseURL, "SCRIBE_PROVIDER_BASE_URL")
	if raw, ok := lookup("SCRIBE_POLL_INTERVAL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid SCRIBE_POLL_INTERVAL: %w", err)
		}
		s.Provider.PollInterval = d
	}
	// GOOGLE_API_KEY is what the first deployments used; GEMINI_API_KEY wins when both are set
	setString(&s.Provider.GeminiAPIKey, "GOOGLE_API_KEY")
	setString(&s.Provider.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&s.Provider.OpenAIAPIKey, "OPENAI_API_KEY")

	setString(&s.Database.Path, "SCRIBE_DB_PATH")
	setString(&s.Database.URL, "SCRIBE_DATABASE_URL")

	setString(&s.Archive.Endpoint, "MINIO_ENDPOINT")
	setString(&s.Archive.AccessKey, "MINIO_ACCESS_KEY")
	setString(&s.Archive.SecretKey, "MINIO_SECRET_KEY")
	setString(&s.Archive.Bucket, "MINIO_BUCKET")
	if raw, ok := lookup("MINIO_USE_SSL"); ok {
		s.Archive.UseSSL = raw == "true"
	}

	return nil
}

// SplitList splits a comma separated value, dropping blanks and duplicates
func SplitList(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(parts))
}

func lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func setString(dst *string, key string) {
	if value, ok := lookup(key); ok {
		*dst = value
	}
}
