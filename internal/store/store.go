// Package store persists whole JSON documents on the local file system.
//
// Every mutation is a full cycle: load the document, change the in-memory copy,
// write the document back. Writes to the same document are serialized by a
// per-document lock held for the whole cycle, and each write replaces the file
// atomically, so readers never observe a partially written document.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	apperrors "customerhub/internal/errors"
)

// ErrNoChange can be returned from an Update callback to skip the write.
var ErrNoChange = errors.New("store: no change")

// FileStore keeps named JSON documents in a directory.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the directory documents are kept in.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// load decodes the named document into v. A document that does not exist yet
// leaves v untouched and reports found=false.
func (s *FileStore) load(name string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &apperrors.StorageError{Op: "read", Document: name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &apperrors.StorageError{Op: "decode", Document: name, Err: err}
	}
	return true, nil
}

// save replaces the named document with the JSON encoding of v.
func (s *FileStore) save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &apperrors.StorageError{Op: "encode", Document: name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return &apperrors.StorageError{Op: "write", Document: name, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &apperrors.StorageError{Op: "write", Document: name, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &apperrors.StorageError{Op: "sync", Document: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &apperrors.StorageError{Op: "write", Document: name, Err: err}
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return &apperrors.StorageError{Op: "rename", Document: name, Err: err}
	}
	return nil
}

// Document is a typed handle on one named document.
type Document[T any] struct {
	store *FileStore
	name  string
	empty func() T
}

// NewDocument returns a handle on the named document. empty builds the value
// returned when the document does not exist yet.
func NewDocument[T any](s *FileStore, name string, empty func() T) *Document[T] {
	return &Document[T]{store: s, name: name, empty: empty}
}

// Name returns the document name.
func (d *Document[T]) Name() string { return d.name }

// Load returns the parsed document, or the empty value if it does not exist.
// Reads do not take the write lock; writes are atomic renames.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return d.load()
}

func (d *Document[T]) load() (T, error) {
	doc := d.empty()
	if _, err := d.store.load(d.name, &doc); err != nil {
		var zero T
		return zero, err
	}
	if isNil(doc) {
		// a document holding JSON null
		doc = d.empty()
	}
	return doc, nil
}

// Save overwrites the document with doc.
func (d *Document[T]) Save(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := d.store.lock(d.name)
	l.Lock()
	defer l.Unlock()
	return d.store.save(d.name, doc)
}

// Update loads the document, passes it to fn and saves what fn returns. The
// document's write lock is held for the whole cycle. If fn returns ErrNoChange
// nothing is written and Update returns nil; any other error aborts the write
// and is returned as is.
func (d *Document[T]) Update(ctx context.Context, fn func(doc T) (T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := d.store.lock(d.name)
	l.Lock()
	defer l.Unlock()

	doc, err := d.load()
	if err != nil {
		return err
	}
	doc, err = fn(doc)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return d.store.save(d.name, doc)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return rv.IsNil()
	}
	return false
}
