// Package filestore keeps one JSON document per profile on local disk.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/pisle-planner/internal/domain"
	"github.com/osse101/pisle-planner/internal/exportstate"
	"github.com/osse101/pisle-planner/internal/utils"
)

const (
	fileExtension = ".json"
	dirPerm       = 0o755
)

// Store implements repository.State on top of a directory
type Store struct {
	dir   string
	codec *exportstate.Codec
}

// New creates the data directory if needed and returns a store rooted there
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{dir: dir, codec: exportstate.NewCodec()}, nil
}

func (s *Store) path(profile string) (string, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, profile+fileExtension), nil
}

// Load reads the profile document. A missing file yields nil, nil.
func (s *Store) Load(ctx context.Context, profile string) (*domain.State, error) {
	path, err := s.path(profile)
	if err != nil {
		return nil, err
	}

	data, ok, err := utils.ReadFileIfExists(path)
	if err != nil || !ok {
		return nil, err
	}

	st, err := s.codec.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile, err)
	}
	return &st, nil
}

// Save replaces the profile document
func (s *Store) Save(ctx context.Context, profile string, state domain.State) error {
	path, err := s.path(profile)
	if err != nil {
		return err
	}
	return utils.SaveJSON(path, state)
}

// Delete removes the profile document, if any
func (s *Store) Delete(ctx context.Context, profile string) error {
	path, err := s.path(profile)
	if err != nil {
		return err
	}
	return utils.RemoveIfExists(path)
}

// Ping checks that the data directory is still reachable
func (s *Store) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory unavailable: %s is not a directory", s.dir)
	}
	return nil
}
