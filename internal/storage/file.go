package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// File keeps values in a single JSON document on disk:
//
//	{"<scope>": {"backend_url": "...", "chat_session_id": "..."}}
//
// The document is re-read on every call so a restarted process sees what the
// previous one wrote.
type File struct {
	path  string
	scope string
	mu    sync.Mutex
}

func NewFile(path, scope string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file storage: empty path")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "file storage: resolve home")
		}
		path = filepath.Join(home, path[2:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "file storage: create dir")
	}
	return &File{path: path, scope: scope}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[f.scope][key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if doc[f.scope] == nil {
		doc[f.scope] = make(map[string]string)
	}
	doc[f.scope][key] = value
	return f.save(doc)
}

func (f *File) load() (map[string]map[string]string, error) {
	doc := make(map[string]map[string]string)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "file storage: read")
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrapf(err, "file storage: decode %s", f.path)
	}
	return doc, nil
}

func (f *File) save(doc map[string]map[string]string) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "file storage: encode")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Wrap(err, "file storage: write")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(err, "file storage: rename")
	}
	return nil
}
