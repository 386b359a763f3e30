package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/gigdash/internal/budget"
)

// File keeps budget limits as one flat JSON object, category to amount.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Load returns empty limits when the file does not exist yet.
func (f *File) Load(_ context.Context) (budget.Limits, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return budget.Limits{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading limits file: %w", err)
	}

	limits := budget.Limits{}
	if err := json.Unmarshal(data, &limits); err != nil {
		return nil, fmt.Errorf("decoding limits file: %w", err)
	}

	return limits, nil
}

// Save writes to a temporary file and renames it over the old one.
func (f *File) Save(_ context.Context, limits budget.Limits) error {
	data, err := json.MarshalIndent(limits, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding limits: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating limits directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".limits-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing limits: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing limits file: %w", err)
	}

	return nil
}
