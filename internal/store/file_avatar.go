package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/avkhasev/tasktrack/internal/config"
	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/google/uuid"
)

// avatarFileStorage is the filesystem implementation of [AvatarFileStorage].
// Uploaded images are written under a single configured directory with
// uuid-derived names, so client-supplied file names never touch the
// filesystem.
type avatarFileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewAvatarFileStorage constructs an [AvatarFileStorage] rooted at the
// configured avatar directory, creating the directory if needed.
func NewAvatarFileStorage(cfg config.Files, logger *logger.Logger) (AvatarFileStorage, error) {
	if err := os.MkdirAll(cfg.AvatarDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating avatar directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.AvatarDir).Msg("creating avatar file storage")
	return &avatarFileStorage{
		dir:    cfg.AvatarDir,
		logger: logger,
	}, nil
}

// Save streams content into a new uuid-named file with the given extension
// and returns the stored file's path. The partially written file is removed
// on any copy failure.
func (s *avatarFileStorage) Save(ctx context.Context, ext string, content io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		log.Err(err).Str("func", "*avatarFileStorage.Save").Str("path", path).Msg("error creating avatar file")
		return "", fmt.Errorf("error creating avatar file: %w", err)
	}

	if _, err = io.Copy(file, content); err != nil {
		file.Close()
		os.Remove(path)
		log.Err(err).Str("func", "*avatarFileStorage.Save").Str("path", path).Msg("error writing avatar file")
		return "", fmt.Errorf("error writing avatar file: %w", err)
	}

	if err = file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("error closing avatar file: %w", err)
	}

	return path, nil
}

// Remove deletes a previously stored avatar file. A missing file is not an
// error: the reference is already gone.
func (s *avatarFileStorage) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing avatar file: %w", err)
	}

	return nil
}
