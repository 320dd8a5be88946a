package datasource

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// FileSource serves documents from a directory tree.
type FileSource struct {
	baseDir string
}

func NewFileSource(baseDir string) *FileSource {
	return &FileSource{baseDir: filepath.Clean(baseDir)}
}

func (s *FileSource) Name() string {
	return "file://" + s.baseDir
}

// resolve maps p into the base directory. Paths that escape it are rejected.
func (s *FileSource) resolve(p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash("/" + strings.TrimSpace(p)))
	if clean == string(filepath.Separator) {
		return "", errors.New(errors.ErrCodeValidation, "empty dataset path")
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *FileSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "fetch cancelled").WithDetail(p)
	}
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrCodeDatasetNotFound, "dataset file not found").WithDetail(p)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "failed to read dataset file").WithDetail(p)
	}
	return data, nil
}

// Ping checks that the base directory exists.
func (s *FileSource) Ping(ctx context.Context) error {
	info, err := os.Stat(s.baseDir)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatasetUnavailable, "dataset directory unavailable").WithDetail(s.baseDir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeDatasetUnavailable, "dataset path is not a directory").WithDetail(s.baseDir)
	}
	return nil
}

//Personal.AI order the ending
