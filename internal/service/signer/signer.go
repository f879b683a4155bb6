package signer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/mkropachev/sign-station/internal/apperrors"
	"github.com/mkropachev/sign-station/internal/domain/artifact"
	"github.com/mkropachev/sign-station/internal/logger"
)

// Signer signs the archive at inputPath and writes the signed package to
// outputPath. Implementations must return a complete SignResult or an error,
// never a partial result.
type Signer interface {
	Sign(ctx context.Context, inputPath, outputPath string) (*artifact.SignResult, error)
}

const (
	// successMarker is the exact, case-sensitive phrase the tool prints on a
	// successful sign.
	successMarker = "Signed OK!"

	// waitDelay bounds the wait for output handles after the process is gone.
	waitDelay = 3 * time.Second
)

var (
	// bundleIDPattern extracts the bundle identifier from the tool output.
	bundleIDPattern = regexp.MustCompile(`BundleId:\s*(\S+)`)
	// bundleVersionPattern extracts the bundle version from the tool output.
	bundleVersionPattern = regexp.MustCompile(`BundleVer:\s*(\S+)`)
)

// Zsign invokes the zsign binary as a subprocess, one fresh process per
// request with no shared state, so invocations may run fully in parallel.
type Zsign struct {
	// binPath is the signer binary location.
	binPath string
	// profilePath is the provisioning profile passed via -m.
	profilePath string
	// keyPath is the signing key passed via -k.
	keyPath string
	// timeout bounds one invocation.
	timeout time.Duration
}

// NewZsign creates the subprocess-backed signer.
func NewZsign(binPath, profilePath, keyPath string, timeout time.Duration) *Zsign {
	return &Zsign{
		binPath:     binPath,
		profilePath: profilePath,
		keyPath:     keyPath,
		timeout:     timeout,
	}
}

// Sign runs the tool, captures stdout and stderr in full and interprets the
// combined output. A deadline expiry kills the subprocess and surfaces as a
// signing error like any other failure; nothing here is retried.
func (z *Zsign) Sign(ctx context.Context, inputPath, outputPath string) (*artifact.SignResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, z.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, z.binPath,
		"-m", z.profilePath,
		"-k", z.keyPath,
		"-o", outputPath,
		inputPath)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Do not wait forever on inherited pipe handles once the process is killed.
	cmd.WaitDelay = waitDelay

	runErr := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, apperrors.Signingf("Unable to sign IPA: signer timed out after %s", z.timeout)
	}

	output := combineOutput(stdout.String(), stderr.String())

	result, err := parseSignOutput(output)
	if err != nil {
		logger.ErrorKV(ctx, "Signer invocation failed",
			"input", inputPath, "run_error", runErr, "output", output)

		return nil, err
	}

	return result, nil
}

// combineOutput appends stderr after stdout, separated by a newline, only
// when stderr is non-empty.
func combineOutput(stdout, stderr string) string {
	if stderr == "" {
		return stdout
	}

	return stdout + "\n" + stderr
}

// parseSignOutput checks the success marker and extracts the bundle metadata.
// A marker without metadata is still a failure: a signer reporting success
// while omitting identity would otherwise produce dead URLs.
func parseSignOutput(output string) (*artifact.SignResult, error) {
	if !strings.Contains(output, successMarker) {
		return nil, apperrors.Signingf("Unable to sign IPA: signer did not report success")
	}

	idMatch := bundleIDPattern.FindStringSubmatch(output)
	if idMatch == nil {
		return nil, apperrors.Signingf("Unable to sign IPA: bundle identifier missing from signer output")
	}

	verMatch := bundleVersionPattern.FindStringSubmatch(output)
	if verMatch == nil {
		return nil, apperrors.Signingf("Unable to sign IPA: bundle version missing from signer output")
	}

	return &artifact.SignResult{
		BundleID:      idMatch[1],
		BundleVersion: verMatch[1],
	}, nil
}
