// Package session records which user is logged in. The record lives in a
// small JSON file so the front end and the reminder scheduler agree on the
// current user without sharing memory.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tgienger/taskmate/internal/models"
)

// Record is the on-disk session
type Record struct {
	UserID     *int64  `json:"user_id"`
	UserName   *string `json:"user_name"`
	UserEmail  *string `json:"user_email"`
	IsLoggedIn bool    `json:"is_logged_in"`
}

// Info describes the logged-in user
type Info struct {
	UserID    int64
	UserName  string
	UserEmail string
}

// Empty returns the canonical logged-out record
func Empty() Record {
	return Record{}
}

// Store reads and writes the session file at Path
type Store struct {
	Path string
}

// New returns a Store for the session file at path
func New(path string) *Store {
	return &Store{Path: path}
}

// Save writes the session for user. A nil user writes an explicit
// logged-out record; the file stays in place.
func (s *Store) Save(user *models.User) error {
	rec := Empty()
	if user != nil {
		rec = Record{
			UserID:     &user.ID,
			UserName:   &user.Name,
			UserEmail:  &user.Email,
			IsLoggedIn: true,
		}
	}
	return s.write(rec)
}

// Logout writes the logged-out record
func (s *Store) Logout() error {
	return s.Save(nil)
}

// Load reads the session file. A missing or malformed file yields the
// empty record.
func (s *Store) Load() Record {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Empty()
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Empty()
	}
	return rec
}

// CurrentUserID returns the logged-in user's id
func (s *Store) CurrentUserID() (int64, bool) {
	rec := s.Load()
	if !rec.IsLoggedIn || rec.UserID == nil {
		return 0, false
	}
	return *rec.UserID, true
}

// CurrentUserInfo returns the logged-in user, or nil
func (s *Store) CurrentUserInfo() *Info {
	rec := s.Load()
	if !rec.IsLoggedIn || rec.UserID == nil {
		return nil
	}
	info := &Info{UserID: *rec.UserID}
	if rec.UserName != nil {
		info.UserName = *rec.UserName
	}
	if rec.UserEmail != nil {
		info.UserEmail = *rec.UserEmail
	}
	return info
}

// IsLoggedIn reports whether someone is logged in
func (s *Store) IsLoggedIn() bool {
	return s.Load().IsLoggedIn
}

// Clear removes the session file
func (s *Store) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove: %w", err)
	}
	return nil
}

// write replaces the file atomically so a concurrent Load never sees a
// half-written record
func (s *Store) write(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session: ensure dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("session: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}
