package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// FileStore implements storage.KV on top of a single JSON file
type FileStore struct {
	filePath string
	values   map[string]string
	mu       sync.RWMutex
	isActive bool
}

// FileMetadata stores metadata about the key-value file
type FileMetadata struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"last_updated"`
	KeyCount    int       `json:"key_count"`
}

// FileData represents the structure of the stored JSON file
type FileData struct {
	Metadata FileMetadata      `json:"metadata"`
	Values   map[string]string `json:"values"`
}

const fileVersion = "1.0"

// NewFileStore creates a new instance of FileStore
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".todo-cli", "store.json")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &FileStore{
		filePath: filePath,
		values:   make(map[string]string),
	}, nil
}

// Open creates a FileStore and connects it
func Open(filePath string) (*FileStore, error) {
	f, err := NewFileStore(filePath)
	if err != nil {
		return nil, err
	}
	if err := f.Connect(); err != nil {
		return nil, err
	}
	return f, nil
}

// Connect loads the values from the file, creating it when missing
func (f *FileStore) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isActive {
		return fmt.Errorf("store is already connected")
	}

	if _, err := os.Stat(f.filePath); os.IsNotExist(err) {
		if err := f.save(); err != nil {
			return fmt.Errorf("failed to initialize file: %w", err)
		}
	}

	if err := f.loadFromFile(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	f.isActive = true
	return nil
}

// Close marks the store closed. Every Set is already on disk.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.isActive {
		return fmt.Errorf("store is already closed")
	}
	f.isActive = false
	return nil
}

// Get returns the value stored under key
func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if err := f.checkActive(); err != nil {
		return nil, err
	}

	value, exists := f.values[key]
	if !exists {
		return nil, storage.ErrKeyNotFound
	}
	return []byte(value), nil
}

// Set stores value under key and rewrites the file
func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkActive(); err != nil {
		return err
	}

	previous, existed := f.values[key]
	f.values[key] = string(value)
	if err := f.save(); err != nil {
		if existed {
			f.values[key] = previous
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Delete removes key and rewrites the file
func (f *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkActive(); err != nil {
		return err
	}

	if _, exists := f.values[key]; !exists {
		return nil
	}
	delete(f.values, key)
	return f.save()
}

// Helper functions

// loadFromFile tolerates an unreadable document by starting empty; the next
// save replaces it.
func (f *FileStore) loadFromFile() error {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileData FileData
	if err := json.Unmarshal(data, &fileData); err != nil {
		f.values = make(map[string]string)
		return nil
	}

	f.values = make(map[string]string, len(fileData.Values))
	for key, value := range fileData.Values {
		f.values[key] = value
	}
	return nil
}

func (f *FileStore) save() error {
	data := FileData{
		Metadata: FileMetadata{
			Version:     fileVersion,
			LastUpdated: time.Now(),
			KeyCount:    len(f.values),
		},
		Values: f.values,
	}

	fileData, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tmp := f.filePath + ".tmp"
	if err := os.WriteFile(tmp, fileData, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, f.filePath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

func (f *FileStore) checkActive() error {
	if !f.isActive {
		return storage.ErrStorageConnection
	}
	return nil
}
