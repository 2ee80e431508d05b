package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

// Store keeps one JSON record per username under a data directory:
// <dir>/<username>.json with the keys password, main_balance and
// savings_balance. Record writes go through a temp file and a rename so a
// crash mid-write cannot leave a half-written record behind.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// EnsureReady creates the data directory if it is missing. Safe to call
// repeatedly.
func (s *Store) EnsureReady() error {
	return os.MkdirAll(s.dir, 0o755)
}

// userPath maps a username to a file inside dir. Usernames that would escape
// the directory are rejected here, since this layer owns the mapping.
func userPath(dir, username, suffix string) (string, error) {
	name := username + suffix
	if username == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid username %q", username)
	}
	return filepath.Join(dir, name), nil
}

func (s *Store) Exists(username string) (bool, error) {
	path, err := userPath(s.dir, username, ".json")
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Load(username string) (models.AccountRecord, error) {
	var record models.AccountRecord
	path, err := userPath(s.dir, username, ".json")
	if err != nil {
		return record, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return record, models.ErrNoSuchAccount
		}
		return record, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&record); err != nil {
		return record, fmt.Errorf("%w: %v", models.ErrCorruptData, err)
	}
	return record, nil
}

// Save fully overwrites the persisted record, creating it if absent.
func (s *Store) Save(username string, record models.AccountRecord) error {
	path, err := userPath(s.dir, username, ".json")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

var _ interfaces.AccountStore = (*Store)(nil)
