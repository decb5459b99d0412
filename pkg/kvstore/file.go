package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store as a single JSON document on disk. It is meant
// for CLI tools and device agents that keep one session across restarts.
//
// Every write replaces the whole document through a temp file followed by a
// rename, so a crash mid-write leaves the previous document intact. The
// file is created with 0600 permissions since it holds credentials.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path, creating parent
// directories as needed. The file itself is created lazily on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, ErrInvalidFilePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := doc[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (s *FileStore) SetMulti(ctx context.Context, items map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for key, value := range items {
		cp := make([]byte, len(value))
		copy(cp, value)
		doc[key] = cp
	}
	return s.save(doc)
}

func (s *FileStore) RemoveMulti(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(doc, key)
	}
	return s.save(doc)
}

// load reads the current document. A missing file is an empty document.
func (s *FileStore) load() (map[string][]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string][]byte), nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	if len(raw) == 0 {
		return make(map[string][]byte), nil
	}

	doc := make(map[string][]byte)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrCorruptStorageFile, err)
	}
	return doc, nil
}

// save writes the document atomically: temp file in the same directory,
// fsync-free rename. Rename within one filesystem is atomic on POSIX.
func (s *FileStore) save(doc map[string][]byte) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
