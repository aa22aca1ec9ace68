package kv

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/kombee/portal/core"
)

// fileStore keeps all keys in one JSON blob on disk, rewritten on every
// mutation. Assumed single-writer (one portal process).
type fileStore struct {
	path string

	mu    sync.Mutex
	table map[string]string
}

var _ core.KeyValueStore = (*fileStore)(nil) // interface compliance check

// OpenFileStore loads (or lazily creates) the blob at path.
// An unreadable blob is discarded, not fatal: sessions are recoverable state.
func OpenFileStore(path string) (core.KeyValueStore, error) {
	s := &fileStore{path: path, table: make(map[string]string)}

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if err = json.Unmarshal(data, &s.table); err != nil {
		s.table = make(map[string]string)
	}
	return s, nil
}

func (s *fileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if val, ok := s.table[key]; ok {
		return val, nil
	}
	return "", core.ErrKeyNotFound
}

func (s *fileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table[key] = value
	return s.flush()
}

func (s *fileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table, key)
	return s.flush()
}

func (s *fileStore) flush() error {
	data, err := json.Marshal(s.table)
	if err != nil {
		return errors.Wrap(err, "marshalling kv table")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	// write-then-rename so a crash mid-write cannot corrupt the blob
	tmp := s.path + ".tmp"
	if err = ioutil.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, "renaming %s", tmp)
	}
	return nil
}
