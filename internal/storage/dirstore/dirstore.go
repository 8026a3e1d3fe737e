// Package dirstore holds the file primitives behind directory-per-entity
// stores: one subdirectory per entity with a meta.json and JSONL companions.
package dirstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when an entity has no meta.json.
var ErrNotFound = errors.New("not found")

const maxLineSize = 1 << 20

// DirStore resolves entity paths under a base directory. It does no locking;
// the owning store serializes access.
type DirStore struct {
	fs         afero.Fs
	baseDir    string
	entityName string // for error messages: "session"
}

// NewDirStore creates a DirStore rooted at baseDir on fs.
func NewDirStore(fs afero.Fs, baseDir, entityName string) *DirStore {
	return &DirStore{fs: fs, baseDir: baseDir, entityName: entityName}
}

// Fs returns the filesystem the store works on.
func (ds *DirStore) Fs() afero.Fs { return ds.fs }

// BaseDir returns the root directory.
func (ds *DirStore) BaseDir() string { return ds.baseDir }

// Dir returns the directory path for a given entity ID.
func (ds *DirStore) Dir(id string) string {
	return filepath.Join(ds.baseDir, id)
}

// FilePath returns the path to a named file within an entity's directory.
func (ds *DirStore) FilePath(id, name string) string {
	return filepath.Join(ds.baseDir, id, name)
}

// EnsureDir creates the entity directory (and parents) if it doesn't exist.
func (ds *DirStore) EnsureDir(id string) error {
	if err := ds.fs.MkdirAll(ds.Dir(id), 0o755); err != nil {
		return fmt.Errorf("create %s dir: %w", ds.entityName, err)
	}
	return nil
}

// ListDirs returns the names of all subdirectories in baseDir. A missing
// baseDir is an empty store.
func (ds *DirStore) ListDirs() ([]string, error) {
	entries, err := afero.ReadDir(ds.fs, ds.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %ss dir: %w", ds.entityName, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// WriteMeta atomically writes meta.json using a temp file + rename.
func (ds *DirStore) WriteMeta(id string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	path := ds.FilePath(id, "meta.json")
	tmp := path + ".tmp"

	if err := afero.WriteFile(ds.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write meta tmp: %w", err)
	}
	if err := ds.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename meta: %w", err)
	}
	return nil
}

// ReadMeta reads and unmarshals meta.json into out.
func (ds *DirStore) ReadMeta(id string, out any) error {
	data, err := afero.ReadFile(ds.fs, ds.FilePath(id, "meta.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %s: %w", ds.entityName, id, ErrNotFound)
		}
		return fmt.Errorf("read meta: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal meta: %w", err)
	}
	return nil
}

// AppendJSONL appends a JSON-encoded line to the given file within an entity's directory.
func (ds *DirStore) AppendJSONL(id, filename string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filename, err)
	}

	f, err := ds.fs.OpenFile(ds.FilePath(id, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// LoadJSONL reads a companion file of an entity. A missing file yields no items.
func LoadJSONL[T any](ds *DirStore, id, filename string) ([]T, error) {
	items, err := ReadJSONL[T](ds.fs, ds.FilePath(id, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return items, err
}

// ReadJSONL decodes every non-blank line of path into T. Unlike a log
// reader it does not skip bad lines: the first one is reported with its
// 1-based line number.
func ReadJSONL[T any](fs afero.Fs, path string) ([]T, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var items []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", filepath.Base(path), err)
	}
	return items, nil
}
