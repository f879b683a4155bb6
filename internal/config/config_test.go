package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// setRequiredEnv populates every required variable with usable values
// rooted in a per-test temporary directory.
func setRequiredEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	t.Setenv("PORT", "8080")
	t.Setenv("PUBLIC_PATH", filepath.Join(dir, "public"))
	t.Setenv("WORK_PATH", filepath.Join(dir, "work"))
	t.Setenv("OTAPROV_PATH", filepath.Join(dir, "ota.mobileprovision"))
	t.Setenv("KEY_PATH", filepath.Join(dir, "key.p12"))
	t.Setenv("VALID_UDIDS", " abc123 ,def456")

	return dir
}

// TestLoad checks parsing, defaults, allow-list normalization and directory creation.
func TestLoad(t *testing.T) {
	dir := setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "/zsign", cfg.SignerPath)
	require.Equal(t, 5*time.Minute, cfg.SignTimeout)
	require.Equal(t, 6*time.Hour, cfg.SweepInterval)
	require.Equal(t, "info", cfg.LogLevel)

	require.NotNil(t, cfg.Allowlist)
	require.True(t, cfg.Allowlist.Contains("ABC123"))
	require.True(t, cfg.Allowlist.Contains("def456"))
	require.False(t, cfg.Allowlist.Contains("other"))

	// Both directories exist afterwards.
	require.DirExists(t, filepath.Join(dir, "public"))
	require.DirExists(t, filepath.Join(dir, "work"))
}

// TestLoadMissingRequired ensures a missing required variable fails startup.
func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")

	_, err := Load()
	require.Error(t, err)
}

// TestLoadEmptyAllowlist ensures an allow-list without usable entries fails startup.
func TestLoadEmptyAllowlist(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VALID_UDIDS", " , ,")

	_, err := Load()
	require.Error(t, err)
}

// TestValidate covers the non-tag invariants.
func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Config{SignTimeout: time.Minute, SweepInterval: time.Hour}
	require.NoError(t, Validate(cfg))

	cfg = &Config{SignTimeout: 0, SweepInterval: time.Hour}
	require.Error(t, Validate(cfg))

	cfg = &Config{SignTimeout: time.Minute, SweepInterval: -time.Second}
	require.Error(t, Validate(cfg))
}
