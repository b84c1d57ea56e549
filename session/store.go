// Package session remembers which user is logged in between runs.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// LoggedOut is the stored user id when nobody is logged in.
const LoggedOut = -1

const userIDKey = "user_id"

type Store struct {
	mu   sync.RWMutex
	path string
	v    *viper.Viper
}

// Open loads the preference file at path. A missing file means logged out.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(userIDKey, LoggedOut)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	return &Store{path: path, v: v}, nil
}

// UserID returns the logged-in user id, or LoggedOut.
func (s *Store) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetInt(userIDKey)
}

func (s *Store) LoggedIn() bool {
	return s.UserID() != LoggedOut
}

func (s *Store) SetUserID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(userIDKey, id)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear logs the current user out.
func (s *Store) Clear() error {
	return s.SetUserID(LoggedOut)
}
