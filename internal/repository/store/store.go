package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mkropachev/sign-station/internal/apperrors"
	"github.com/mkropachev/sign-station/internal/domain/artifact"
	"github.com/mkropachev/sign-station/internal/logger"
)

// Store resolves artifact identities to paths under the working and public
// directories and owns the writes into the working directory.
//
// Concurrent requests never collide here: every identity carries a fresh
// random component, so writes target disjoint paths by construction.
type Store struct {
	// workDir stages uploaded archives until the signer consumed them.
	workDir string
	// publicDir holds published signed artifacts.
	publicDir string
}

// New creates a store over the two directories.
func New(workDir, publicDir string) *Store {
	return &Store{
		workDir:   filepath.Clean(workDir),
		publicDir: filepath.Clean(publicDir),
	}
}

// WorkingPath returns the staging location for an identity.
func (s *Store) WorkingPath(id artifact.Identity) string {
	return filepath.Join(s.workDir, id.String())
}

// PublicPath returns the published location for an identity.
func (s *Store) PublicPath(id artifact.Identity) string {
	return filepath.Join(s.publicDir, id.String())
}

// PublicDir returns the published artifact directory.
func (s *Store) PublicDir() string {
	return s.publicDir
}

// SaveWorking writes the uploaded archive to the working path of the identity.
// A failed write leaves nothing behind: the partial file is removed before
// the error is returned.
func (s *Store) SaveWorking(id artifact.Identity, contents io.Reader) error {
	path := s.WorkingPath(id)

	file, err := os.Create(path)
	if err != nil {
		return apperrors.Storagef("Unable to save IPA in the server: %v", err)
	}

	if _, err = io.Copy(file, contents); err != nil {
		file.Close()
		os.Remove(path)

		return apperrors.Storagef("Unable to save IPA in the server: %v", err)
	}

	if err = file.Close(); err != nil {
		os.Remove(path)

		return apperrors.Storagef("Unable to save IPA in the server: %v", err)
	}

	return nil
}

// RemoveWorking deletes the staged archive best-effort. Failures are logged
// and swallowed so cleanup never turns a finished request into an error,
// but staged files do not silently pile up either.
func (s *Store) RemoveWorking(ctx context.Context, id artifact.Identity) {
	if err := os.Remove(s.WorkingPath(id)); err != nil && !os.IsNotExist(err) {
		logger.WarnKV(ctx, "Failed to delete working file", "path", s.WorkingPath(id), "error", err)
	}
}

// Sweep deletes every regular file directly under the public directory.
// Enumeration and deletion failures are logged and do not propagate.
func (s *Store) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(s.publicDir)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to read public directory", "dir", s.publicDir, "error", err)

		return
	}

	removed := 0

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(s.publicDir, entry.Name())
		if err = os.Remove(path); err != nil {
			logger.ErrorKV(ctx, "Failed to delete published artifact", "path", path, "error", err)

			continue
		}

		removed++
	}

	if removed > 0 {
		logger.InfoKV(ctx, "Retention sweep finished", "removed", removed)
	}
}

// String describes the store layout, mostly for startup logs.
func (s *Store) String() string {
	return fmt.Sprintf("store{work: %s, public: %s}", s.workDir, s.publicDir)
}
