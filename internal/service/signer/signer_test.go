package signer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkropachev/sign-station/internal/apperrors"
)

// TestParseSignOutput covers marker detection and metadata extraction.
func TestParseSignOutput(t *testing.T) {
	t.Parallel()

	result, err := parseSignOutput("Signed OK!\nBundleId: com.example.app\nBundleVer: 3.2.1")
	require.NoError(t, err)
	require.Equal(t, "com.example.app", result.BundleID)
	require.Equal(t, "3.2.1", result.BundleVersion)

	// Metadata elsewhere in a noisy blob still parses.
	result, err = parseSignOutput(">>> BundleId: com.x\n>>> BundleVer: 1.0\nstuff\nSigned OK!\n")
	require.NoError(t, err)
	require.Equal(t, "com.x", result.BundleID)
	require.Equal(t, "1.0", result.BundleVersion)
}

// TestParseSignOutputFailures enumerates the rejection cases.
func TestParseSignOutputFailures(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no marker":          "BundleId: com.example.app\nBundleVer: 3.2.1",
		"lower-case marker":  "signed ok!\nBundleId: com.x\nBundleVer: 1.0",
		"missing bundle id":  "Signed OK!\nBundleVer: 3.2.1",
		"missing bundle ver": "Signed OK!\nBundleId: com.example.app",
		"empty output":       "",
		"marker only":        "Signed OK!",
	}

	for name, output := range cases {
		output := output
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := parseSignOutput(output)
			require.ErrorIs(t, err, apperrors.ErrSigning)
		})
	}
}

// TestCombineOutput appends stderr only when present.
func TestCombineOutput(t *testing.T) {
	t.Parallel()

	require.Equal(t, "out", combineOutput("out", ""))
	require.Equal(t, "out\nerr", combineOutput("out", "err"))
	require.Equal(t, "\nerr", combineOutput("", "err"))
}

// TestZsignRunsSubprocess exercises the subprocess path with a stand-in
// script that mimics zsign's argument order and output.
func TestZsignRunsSubprocess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-zsign.sh")
	fakeTool := "#!/bin/sh\n" +
		"echo \"Signed OK!\"\n" +
		"echo \"BundleId: com.fake.app\"\n" +
		"echo \"BundleVer: 9.9\" 1>&2\n"
	require.NoError(t, os.WriteFile(script, []byte(fakeTool), 0o700))

	z := NewZsign(script, "profile", "key", time.Minute)

	result, err := z.Sign(context.Background(), filepath.Join(dir, "in.ipa"), filepath.Join(dir, "out.ipa"))
	require.NoError(t, err)
	require.Equal(t, "com.fake.app", result.BundleID)
	require.Equal(t, "9.9", result.BundleVersion)
}

// TestZsignSpawnFailure classifies an unspawnable binary as a signing error.
func TestZsignSpawnFailure(t *testing.T) {
	t.Parallel()

	z := NewZsign(filepath.Join(t.TempDir(), "missing-binary"), "profile", "key", time.Minute)

	_, err := z.Sign(context.Background(), "in.ipa", "out.ipa")
	require.ErrorIs(t, err, apperrors.ErrSigning)
}

// TestZsignTimeout kills a hung signer and reports a signing error.
func TestZsignTimeout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	script := filepath.Join(dir, "hang.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o700))

	z := NewZsign(script, "profile", "key", 100*time.Millisecond)

	start := time.Now()
	_, err := z.Sign(context.Background(), "in.ipa", "out.ipa")
	require.ErrorIs(t, err, apperrors.ErrSigning)
	require.Less(t, time.Since(start), 10*time.Second)
}
