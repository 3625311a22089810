package fsmdef

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
)

// SupportsFileExtension reports whether ext names a definition format Decode reads.
// The extension may or may not include a leading dot.
func SupportsFileExtension(ext string) bool {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml", "json":
		return true
	default:
		return false
	}
}

// LoadFile reads and decodes a .yaml, .yml or .json definition file.
func LoadFile(ctx context.Context, path string) (*fsm.Config, error) {
	if !SupportsFileExtension(filepath.Ext(path)) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	cfg, err := Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFS works like LoadFile for a file inside fsys, such as an embedded directory.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (*fsm.Config, error) {
	if !SupportsFileExtension(filepath.Ext(name)) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	cfg, err := Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}
