package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Legacy file names inside a LocalStorage directory
const (
	DebtsFile    = "debts.json"
	PaymentsFile = "payments.json"
)

// LocalStorage reads the JSON dump of the legacy client's local storage
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage path %s is not a directory", basePath)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Describe identifies the source in logs
func (s *LocalStorage) Describe() string {
	return "json:" + s.basePath
}

// Load reads both files. A missing file counts as an empty collection.
func (s *LocalStorage) Load(ctx context.Context) (*Snapshot, error) {
	var debts []legacyDebt
	if err := s.readJSON(DebtsFile, &debts); err != nil {
		return nil, err
	}
	var payments []legacyPayment
	if err := s.readJSON(PaymentsFile, &payments); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{}
	for _, d := range debts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		debt, err := d.toModel()
		if err != nil {
			return nil, err
		}
		snapshot.Debts = append(snapshot.Debts, debt)
	}
	for _, p := range payments {
		payment, err := p.toModel()
		if err != nil {
			return nil, err
		}
		snapshot.Payments = append(snapshot.Payments, payment)
	}
	return snapshot, nil
}

func (s *LocalStorage) readJSON(name string, v interface{}) error {
	f, err := s.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Open returns a file for reading
func (s *LocalStorage) Open(relativePath string) (*os.File, error) {
	return os.Open(s.GetFullPath(relativePath))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(s.GetFullPath(relativePath))
	return err == nil
}

// GetFullPath returns the absolute path of a file in the directory
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}
