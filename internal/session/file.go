package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the session as JSON on disk so it survives process
// restarts, the way the browser client kept tokens across reloads
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the session file location under the user's home
// directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clubctl/session.json"
	}
	return filepath.Join(home, ".clubctl", "session.json")
}

var _ Store = (*FileStore)(nil)

func (f *FileStore) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(f.path, data, 0600)
}

func (f *FileStore) Current() (Session, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}
	if s.AccessToken == "" && s.RefreshToken == "" {
		return Session{}, false
	}
	return s, true
}

func (f *FileStore) SetAccessToken(access string) error {
	s, _ := f.Current()
	s.AccessToken = access
	return f.Save(s)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
