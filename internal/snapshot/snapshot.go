// Package snapshot persists the site index: the set of content slugs the
// site serves. The artifact is a JSON object with a single "slugs" array,
// sorted so that regenerating from unchanged sources is byte-identical.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/slug"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/util/sets"
)

// Index is the persisted slug set.
type Index struct {
	Slugs []string `json:"slugs"`
}

// New de-duplicates and sorts slugs.
func New(slugs []string) Index {
	return Index{Slugs: sets.Sorted(sets.New(slugs...))}
}

// Len returns the number of slugs.
func (i Index) Len() int { return len(i.Slugs) }

// Set returns the slugs as a set.
func (i Index) Set() sets.Set[string] { return sets.New(i.Slugs...) }

// Marshal renders the canonical on-disk form.
func (i Index) Marshal() ([]byte, error) {
	canonical := New(i.Slugs)
	data, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Read loads the index at path. A missing file yields a SnapshotMissing
// error; a file that cannot be read, decoded, or that holds a malformed
// slug yields SnapshotUnreadable.
func Read(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Index{}, ferrors.SnapshotMissing(path, err)
		}
		return Index{}, ferrors.SnapshotUnreadable(path, err)
	}
	return Decode(path, data)
}

// Decode parses snapshot bytes. path is used for error context only.
func Decode(path string, data []byte) (Index, error) {
	var raw struct {
		Slugs *[]string `json:"slugs"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return Index{}, ferrors.SnapshotUnreadable(path, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Index{}, ferrors.SnapshotUnreadable(path, errors.New("trailing data after snapshot object"))
	}
	if raw.Slugs == nil {
		return Index{}, ferrors.SnapshotUnreadable(path, errors.New(`missing "slugs" field`))
	}
	for _, s := range *raw.Slugs {
		if !slug.Valid(s) {
			return Index{}, ferrors.SnapshotUnreadable(path, fmt.Errorf("malformed slug %q", s))
		}
	}
	return New(*raw.Slugs), nil
}

// Write persists idx at path, creating parent directories as needed. The
// file is replaced atomically so readers never observe a partial document.
func Write(path string, idx Index) error {
	data, err := idx.Marshal()
	if err != nil {
		return ferrors.InternalError("marshal snapshot").WithCause(err).Build()
	}
	return WriteFileAtomic(path, data)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fsError("ensure snapshot directory", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fsError("create temporary file", dir, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fsError("write temporary file", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fsError("sync temporary file", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fsError("close temporary file", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fsError("chmod temporary file", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fsError("atomic rename", path, err)
	}
	return nil
}

func fsError(msg, path string, cause error) error {
	return ferrors.WrapError(cause, ferrors.CategoryFileSystem, msg).
		Retryable().
		WithContext(ferrors.ContextKeyPath, path).
		Build()
}
