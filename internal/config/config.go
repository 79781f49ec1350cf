package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config holds the deployment settings shared by the docsflow binaries.
// Credentials are never persisted to YAML; they come from the environment only.
type Config struct {
	// BaseURL is the Fluid Topics portal URL, taken from FLUID_URL.
	BaseURL string `yaml:"-"`
	// Username is the portal user for Basic auth, taken from FLUID_USER.
	Username string `yaml:"-"`
	// Password is the portal password for Basic auth, taken from FLUID_PASS.
	Password string `yaml:"-"`
	// Collection is the target collection name for uploaded packages.
	Collection string `yaml:"collection"`
	// SourceDir optionally pins the directory to package instead of the
	// site/docs autodetection.
	SourceDir string `yaml:"source_dir"`
	// PackageName is the archive filename written to the working directory.
	PackageName string `yaml:"package_name"`
	// UploadTimeout bounds the whole multipart upload call.
	UploadTimeout time.Duration `yaml:"upload_timeout"`
	// PollInterval is the fixed wait between processing status queries.
	PollInterval time.Duration `yaml:"poll_interval"`
	// PollBudget is the maximum number of status queries per deployment.
	PollBudget int `yaml:"poll_budget"`
}

const (
	// EnvBaseURL names the environment variable carrying the portal URL.
	EnvBaseURL = "FLUID_URL"
	// EnvUsername names the environment variable carrying the portal user.
	EnvUsername = "FLUID_USER"
	// EnvPassword names the environment variable carrying the portal password.
	EnvPassword = "FLUID_PASS"

	// DefaultConfigFilename is the default filename for deployment settings.
	DefaultConfigFilename = "docsflow-settings.yaml"

	// DefaultCollection is the portal collection packages are published into.
	DefaultCollection = "docsflow-docs"

	// DefaultPackageName is the transient archive written next to the binary.
	DefaultPackageName = "docs_package.zip"

	// DefaultUploadTimeout bounds the multipart upload; packages can be large.
	DefaultUploadTimeout = 5 * time.Minute

	// DefaultPollInterval is the fixed wait between status queries.
	DefaultPollInterval = 10 * time.Second

	// DefaultPollBudget is the maximum number of status queries per run.
	DefaultPollBudget = 30
)

var (
	// ErrConfiguration marks pre-flight configuration failures. It is checked
	// with errors.Is by callers that must not start network activity.
	ErrConfiguration = errors.New("invalid configuration")

	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
)

// Load reads optional settings from the provided path, overlays environment
// credentials, and validates the result. A missing settings file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := &Config{}

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Settings file is optional.
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	FromEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv fills credentials and the portal URL from the process environment.
// The variables are read once at startup; nothing re-reads them later.
func FromEnv(cfg *Config) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv(EnvBaseURL)), "/")
	cfg.Username = os.Getenv(EnvUsername)
	cfg.Password = os.Getenv(EnvPassword)
}

// Validate checks the provided settings for required fields and formatting,
// and fills defaults for optional knobs. It must pass before any network
// activity starts.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	if cfg.PackageName == "" {
		cfg.PackageName = DefaultPackageName
	}

	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = DefaultUploadTimeout
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.PollBudget <= 0 {
		cfg.PollBudget = DefaultPollBudget
	}

	err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.BaseURL, validation.Required, is.RequestURL),
		validation.Field(&cfg.Username, validation.Required),
		validation.Field(&cfg.Password, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %s (set %s, %s and %s)",
			ErrConfiguration, err, EnvBaseURL, EnvUsername, EnvPassword)
	}

	return nil
}
