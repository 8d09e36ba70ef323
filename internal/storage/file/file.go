package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/avstrong/campsite/internal/logger"
	"github.com/avstrong/campsite/internal/reservation"
)

type Config struct {
	L    *logger.Logger
	Path string
}

// Store keeps the whole reservation list in one JSON file. Every Save
// rewrites the file through a temporary file and a rename, so readers never
// see a half-written list.
type Store struct {
	mu   sync.Mutex
	l    *logger.Logger
	path string
}

func New(conf Config) (*Store, error) {
	if conf.Path == "" {
		return nil, ErrEmptyPath
	}

	if err := os.MkdirAll(filepath.Dir(conf.Path), 0o755); err != nil { //nolint:gomnd
		return nil, fmt.Errorf("create directory for %s: %w", conf.Path, err)
	}

	//nolint:exhaustruct
	return &Store{l: conf.L, path: conf.Path}, nil
}

// Load treats a missing file as an empty list. Unknown fields and invalid
// records fail the whole load, so a later Save never drops data it did not
// understand.
func (s *Store) Load(ctx context.Context) ([]*reservation.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*reservation.Record{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var stored []record

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&stored); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	records := make([]*reservation.Record, 0, len(stored))

	for _, r := range stored {
		out, err := r.reservation()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}

		records = append(records, out)
	}

	return records, nil
}

func (s *Store) Save(ctx context.Context, records []*reservation.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]record, 0, len(records))
	for _, r := range records {
		stored = append(stored, toFileRecord(r))
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				s.l.LogErrorf("Could not remove temp file %s: %v", tmpName, rmErr.Error())
			}
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()

		return fmt.Errorf("sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}

	s.l.LogDebug("Saved %d reservations to %s", len(records), s.path)

	return nil
}
