// Package jsonfile persists registries as JSON array files under a data
// directory. Collections are loaded wholesale, mutated in memory, and
// written back atomically via a temp-file rename, so a write that returns
// nil is durable.
package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
)

// readCollection loads the whole collection. A missing file is an empty
// collection; a file that does not parse as a JSON array is an error.
func readCollection[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var items []T
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func writeCollection[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := sonic.ConfigDefault.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	return nil
}
