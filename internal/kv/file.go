package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileProvider keeps the whole store in a single JSON file, the closest
// server-side stand-in for a phone's local storage. Every write rewrites the
// file; the store holds small personalization blobs, not bulk data.
type FileProvider struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

func NewFileProvider(path string) (*FileProvider, error) {
	if path == "" {
		return nil, fmt.Errorf("kv file path is required")
	}

	p := &FileProvider{
		path: path,
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read kv file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.data); err != nil {
			return nil, fmt.Errorf("failed to parse kv file: %w", err)
		}
	}

	return p, nil
}

func (f *FileProvider) Get(ctx context.Context, key string) (string, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()

	value, exists := f.data[key]
	if !exists {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *FileProvider) Set(ctx context.Context, key string, value string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return f.flushLocked()
}

func (f *FileProvider) Delete(ctx context.Context, key string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)
	return f.flushLocked()
}

func (f *FileProvider) Close() error {
	return nil
}

func (f *FileProvider) flushLocked() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("failed to encode kv file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create kv directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write kv file: %w", err)
	}
	return os.Rename(tmp, f.path)
}
