package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "scribe/internal/app/errors"
)

// DefaultConfigFile is read when no explicit config path is given and the file exists
const DefaultConfigFile = "scribe.yaml"

// Settings is the complete runtime configuration shared by the CLI, the form handler and the service
type Settings struct {
	// Endpoint is the base URL the form handler posts to; /transcribe/ is appended
	Endpoint string           `yaml:"endpoint" validate:"required,url"`
	Server   ServerSettings   `yaml:"server"`
	Provider ProviderSettings `yaml:"provider"`
	Database DatabaseSettings `yaml:"database"`
	Archive  ArchiveSettings  `yaml:"archive"`
}

type ServerSettings struct {
	Host        string   `yaml:"host"`
	Port        string   `yaml:"port" validate:"required,numeric"`
	Environment string   `yaml:"environment" validate:"oneof=development production test"`
	APITokens   []string `yaml:"api_tokens"`
	MaxUploadMB int64    `yaml:"max_upload_mb" validate:"gte=1"`
}

type ProviderSettings struct {
	Name         string        `yaml:"name" validate:"required"`
	Model        string        `yaml:"model"`
	Prompt       string        `yaml:"prompt"`
	PollInterval time.Duration `yaml:"poll_interval" validate:"gt=0"`
	// BaseURL overrides the provider API endpoint, e.g. for a proxy
	BaseURL      string        `yaml:"base_url" validate:"omitempty,url"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
}

type DatabaseSettings struct {
	// Path of the SQLite history database, used unless URL is set
	Path string `yaml:"path"`
	// URL is a Postgres connection string
	URL string `yaml:"url"`
}

type ArchiveSettings struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Enabled reports whether uploads should be archived
func (a ArchiveSettings) Enabled() bool {
	return a.Endpoint != ""
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		Endpoint: "http://localhost:8000",
		Server: ServerSettings{
			Host:        "",
			Port:        "8000",
			Environment: "development",
			MaxUploadMB: 200,
		},
		Provider: ProviderSettings{
			Name:         "gemini",
			PollInterval: 10 * time.Second,
		},
		Database: DatabaseSettings{
			Path: "data/transcription.db",
		},
		Archive: ArchiveSettings{
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Bucket:    "scribe-uploads",
		},
	}
}

// Load builds settings from defaults, the optional YAML file and the environment, in that order.
// An empty path falls back to DefaultConfigFile when it exists.
func Load(path string) (*Settings, error) {
	settings := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(settings); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks struct constraints and reports every failing field at once
func (s *Settings) Validate() error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Wrap(err, apperrors.ErrInvalidConfig.Error())
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldError := range validationErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fieldError.Namespace(), fieldError.Tag()))
	}
	return apperrors.Wrap(apperrors.InvalidField("settings", strings.Join(fields, ", ")), apperrors.ErrInvalidConfig.Error())
}

// RequireProviderKey fails fast when the selected provider has no API key
func (s *Settings) RequireProviderKey() error {
	switch s.Provider.Name {
	case "gemini":
		if s.Provider.GeminiAPIKey == "" {
			return apperrors.Wrap(apperrors.RequiredField("GEMINI_API_KEY"), apperrors.ErrMissingAPIKey.Error())
		}
	case "openai":
		if s.Provider.OpenAIAPIKey == "" {
			return apperrors.Wrap(apperrors.RequiredField("OPENAI_API_KEY"), apperrors.ErrMissingAPIKey.Error())
		}
	}
	return nil
}

// MaxUploadBytes converts the configured upload limit to bytes
func (s ServerSettings) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// Address returns host:port for the HTTP listener
func (s ServerSettings) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}
