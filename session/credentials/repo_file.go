package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the credentials in a single JSON document on disk. The
// document is replaced atomically (temp file + rename) so an interrupted
// write can never leave half a session behind.
type FileStore struct {
	filePath string
	lock     sync.Mutex
}

// DefaultFilePath returns the conventional session file location under the
// user's home directory.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[credentials.DefaultFilePath] user home dir")
	}
	return filepath.Join(home, ".blogctl", "session.json"), nil
}

// NewFileStore creates a file-backed store. An empty filePath selects
// DefaultFilePath.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		defaultPath, err := DefaultFilePath()
		if err != nil {
			return nil, err
		}
		filePath = defaultPath
	}
	return &FileStore{filePath: filePath}, nil
}

func (fs *FileStore) Load() (*Credentials, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, errors.Wrap(err, "[FileStore.Load] read")
	}

	var credentials Credentials
	if err := json.Unmarshal(data, &credentials); err != nil {
		return nil, errors.Wrap(err, "[FileStore.Load] unmarshal")
	}
	if credentials.RefreshToken == absentMarker {
		credentials.RefreshToken = ""
	}
	return &credentials, nil
}

func (fs *FileStore) Save(credentials *Credentials) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := json.MarshalIndent(credentials, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal")
	}

	dir := filepath.Dir(fs.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] mkdir")
	}

	tmpFile, err := os.CreateTemp(dir, "session-*.json")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] temp file")
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "[FileStore.Save] write")
	}
	if err := tmpFile.Chmod(0600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "[FileStore.Save] chmod")
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "[FileStore.Save] close")
	}

	if err := os.Rename(tmpPath, fs.filePath); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "[FileStore.Save] rename")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.filePath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}
