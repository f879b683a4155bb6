package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mkropachev/sign-station/internal/domain/artifact"
)

// Config holds every process-wide setting of the signing service.
type Config struct {
	// Port is the HTTP listening port.
	Port string `env:"PORT,required,notEmpty"`
	// PublicPath is the directory holding published signed artifacts.
	PublicPath string `env:"PUBLIC_PATH,required,notEmpty"`
	// WorkPath is the staging directory for uploaded archives.
	WorkPath string `env:"WORK_PATH,required,notEmpty"`
	// ProfilePath is the provisioning profile handed to the signer.
	ProfilePath string `env:"OTAPROV_PATH,required,notEmpty"`
	// KeyPath is the signing key handed to the signer.
	KeyPath string `env:"KEY_PATH,required,notEmpty"`
	// SignerPath is the external signer binary.
	SignerPath string `env:"SIGNER_PATH" envDefault:"/zsign"`
	// ValidUDIDs is the raw comma-separated device allow-list.
	ValidUDIDs []string `env:"VALID_UDIDS,required" envSeparator:","`
	// SignTimeout bounds one signer subprocess invocation.
	SignTimeout time.Duration `env:"SIGN_TIMEOUT" envDefault:"5m"`
	// SweepInterval is the period of the public directory retention sweep.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"6h"`
	// LogLevel is the minimum level for log output.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Allowlist is built from ValidUDIDs during Load.
	Allowlist *artifact.Allowlist `env:"-"`
}

// DefaultDirPermissions is used when creating the working and public directories.
const DefaultDirPermissions = 0o750

var (
	// errSignTimeoutInvalid is returned when the signer timeout is not positive.
	errSignTimeoutInvalid = errors.New("sign timeout must be positive")
	// errSweepIntervalInvalid is returned when the sweep interval is not positive.
	errSweepIntervalInvalid = errors.New("sweep interval must be positive")
)

// Load reads the environment (optionally seeded from a .env file in the
// working directory), validates the result and prepares the filesystem
// layout. Any failure here must abort startup.
func Load() (*Config, error) {
	// A missing .env file is fine; explicit environment wins either way.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	allowlist, err := artifact.NewAllowlist(cfg.ValidUDIDs)
	if err != nil {
		return nil, fmt.Errorf("build device allow-list: %w", err)
	}

	cfg.Allowlist = allowlist

	for _, dir := range []string{cfg.WorkPath, cfg.PublicPath} {
		if err = os.MkdirAll(filepath.Clean(dir), DefaultDirPermissions); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return &cfg, nil
}

// Validate checks settings that the env tags alone cannot express.
func Validate(cfg *Config) error {
	if cfg.SignTimeout <= 0 {
		return errSignTimeoutInvalid
	}

	if cfg.SweepInterval <= 0 {
		return errSweepIntervalInvalid
	}

	return nil
}
