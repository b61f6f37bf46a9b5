package trace

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
)

// Store persists traces.
type Store interface {
	// Get returns the trace whose ID, ID prefix or name matches ref.
	Get(ctx context.Context, ref string) (*Trace, error)

	// Save validates and writes tr, assigning an ID when it has none.
	Save(ctx context.Context, tr *Trace) error

	// Delete removes the trace matching ref.
	Delete(ctx context.Context, ref string) error

	// List returns every stored trace, oldest first.
	List(ctx context.Context) ([]*Trace, error)

	Close() error
}

// FileStore keeps one JSON file per trace in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates the store directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := errors.ValidatePath(baseDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create trace dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) tracePath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(ctx context.Context, ref string) (*Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(ref)
}

func (s *FileStore) Save(ctx context.Context, tr *Trace) error {
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	} else if _, err := uuid.Parse(tr.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTrace, err, "trace id %q", tr.ID)
	}
	if err := tr.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tr.Name != "" {
		if other, err := s.byName(tr.Name); err == nil && other.ID != tr.ID {
			return errors.New(errors.ErrCodeInvalidInput, "a trace named %q already exists", tr.Name)
		}
	}

	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal trace")
	}
	if err := os.WriteFile(s.tracePath(tr.ID), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write trace file")
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := s.find(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(s.tracePath(tr.ID)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove trace file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]*Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	traces, err := s.readAll()
	if err != nil {
		return nil, err
	}
	sort.Slice(traces, func(i, j int) bool {
		return traces[i].CreatedAt.Before(traces[j].CreatedAt)
	})
	return traces, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for trace files.
func (s *FileStore) Path() string { return s.baseDir }

// find resolves ref as an exact ID, then a name, then a unique ID prefix.
func (s *FileStore) find(ref string) (*Trace, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "trace reference cannot be empty")
	}
	if _, err := uuid.Parse(ref); err == nil {
		tr, err := s.read(s.tracePath(ref))
		if err == nil || !errors.Is(err, errors.ErrCodeTraceNotFound) {
			return tr, err
		}
	}
	if tr, err := s.byName(ref); err == nil {
		return tr, nil
	}

	traces, err := s.readAll()
	if err != nil {
		return nil, err
	}
	var match *Trace
	for _, tr := range traces {
		if strings.HasPrefix(tr.ID, ref) {
			if match != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "trace reference %q is ambiguous", ref)
			}
			match = tr
		}
	}
	if match == nil {
		return nil, errors.New(errors.ErrCodeTraceNotFound, "no trace matches %q", ref)
	}
	return match, nil
}

func (s *FileStore) byName(name string) (*Trace, error) {
	traces, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, tr := range traces {
		if tr.Name == name {
			return tr, nil
		}
	}
	return nil, errors.New(errors.ErrCodeTraceNotFound, "no trace named %q", name)
}

func (s *FileStore) read(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeTraceNotFound, err, "trace %s", filepath.Base(path))
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read trace file")
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTrace, err, "parse %s", filepath.Base(path))
	}
	return &tr, nil
}

// readAll skips files that cannot be parsed.
func (s *FileStore) readAll() ([]*Trace, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read trace dir")
	}
	var traces []*Trace
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		tr, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		traces = append(traces, tr)
	}
	return traces, nil
}

var _ Store = (*FileStore)(nil)
