// services/credentials.go
package services

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// credentialsFile is the on-disk shape. The two fixed keys mirror what the
// dashboard frontend keeps in browser storage: the bearer token and the
// parsed staff profile.
type credentialsFile struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile,omitempty"`
}

// CredentialStore is the persisted bearer credential for the remote backend,
// injected into every outbound client rather than read from a hidden global.
// Clear is idempotent per stored credential, so concurrent auth failures
// trigger the clear-and-notify path exactly once.
type CredentialStore struct {
	mu      sync.Mutex
	path    string
	token   string
	profile json.RawMessage
}

// NewCredentialStore loads any previously persisted credential from path. A
// missing file is not an error; the store simply starts empty.
func NewCredentialStore(path string) (*CredentialStore, error) {
	s := &CredentialStore{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	var f credentialsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		// A corrupt credentials file is treated as logged out.
		zap.L().Warn("discarding unreadable credentials file", zap.String("path", path), zap.Error(err))
		return s, nil
	}

	s.token = f.Token
	s.profile = f.Profile
	return s, nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *CredentialStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns the persisted staff profile as raw JSON.
func (s *CredentialStore) Profile() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Save persists a fresh credential, replacing any previous one.
func (s *CredentialStore) Save(token string, profile json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(credentialsFile{Token: token, Profile: profile})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return err
	}

	s.token = token
	s.profile = profile
	return nil
}

// Clear wipes the stored credential in memory and on disk. It reports whether
// there was anything to clear, which lets the caller run its auth-failure
// hook exactly once even when several in-flight calls hit a 401 together.
func (s *CredentialStore) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" && s.profile == nil {
		return false
	}

	s.token = ""
	s.profile = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		zap.L().Warn("failed to remove credentials file", zap.String("path", s.path), zap.Error(err))
	}
	return true
}
