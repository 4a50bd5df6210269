package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalFS implements Storage for local filesystem
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a new LocalFS storage rooted at basePath.
func NewLocalFS(basePath string) (*LocalFS, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, storageErr("creating base path", basePath, err)
	}
	return &LocalFS{basePath: basePath}, nil
}

// fullPath maps a key to a file below basePath, rejecting keys that would
// escape it.
func (l *LocalFS) fullPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", storageErr("resolving", key, fmt.Errorf("key escapes base path"))
	}
	return filepath.Join(l.basePath, clean), nil
}

func (l *LocalFS) Write(ctx context.Context, key string, data []byte) error {
	path, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return storageErr("creating directories for", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return storageErr("writing", key, err)
	}
	return nil
}

func (l *LocalFS) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := l.fullPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, storageErr("reading", key, err)
	}
	return data, nil
}

// List returns every key starting with prefix in lexical order. As with
// object stores the prefix need not end on a directory boundary.
func (l *LocalFS) List(ctx context.Context, prefix string) ([]string, error) {
	dir := prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		dir = path.Dir(prefix)
	}
	searchPath, err := l.fullPath(dir)
	if err != nil {
		return nil, err
	}

	keys := []string{}
	err = filepath.WalkDir(searchPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.basePath, p)
		if err != nil {
			return err
		}
		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, storageErr("listing", prefix, err)
	}
	return keys, nil
}

func (l *LocalFS) Delete(ctx context.Context, key string) error {
	path, err := l.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return storageErr("deleting", key, err)
	}
	return nil
}

func (l *LocalFS) Exists(ctx context.Context, key string) (bool, error) {
	path, err := l.fullPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, storageErr("stat", key, err)
	}
	return true, nil
}
