package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	UsersFile = "users.json"
	LeadsFile = "leads.json"
)

// Store persists record collections as pretty-printed JSON array files, one
// file per collection. It is the single source of truth: every mutation is
// load-all, change, save-all.
//
// The mutex serializes writers inside this process, which closes the
// lost-update race between concurrent requests. It does NOT protect the
// files against other processes writing them; at this scale that limitation
// is accepted rather than hidden.
type Store struct {
	mu  sync.Mutex
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// read decodes the named collection into out. A missing, unreadable or
// malformed file is treated as an empty collection — out is left at its
// zero value and no error is returned.
func (s *Store) read(filename string, out any) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		return
	}
}

// write overwrites the named collection. The marshalled document goes to a
// temp file first and is renamed into place, so a crash mid-write never
// truncates the live file.
func (s *Store) write(filename string, records any) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	target := filepath.Join(s.dir, filename)
	tmp, err := os.CreateTemp(s.dir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", filename, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	return nil
}

// Reset deletes every collection file. Irreversible.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, filename := range []string{UsersFile, LeadsFile} {
		if err := os.Remove(filepath.Join(s.dir, filename)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filename, err)
		}
	}
	return nil
}
