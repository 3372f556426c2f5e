package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenFile persists the session token between CLI invocations.
type TokenFile string

// DefaultTokenFile returns ~/.config/studytrackr/session
func DefaultTokenFile() (TokenFile, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return TokenFile(filepath.Join(cfg, "studytrackr", "session")), nil
}

// Load returns the saved token, or "" when none is saved.
func (f TokenFile) Load() (string, error) {
	b, err := os.ReadFile(string(f))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (f TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(string(f)), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(string(f), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f TokenFile) Clear() error {
	err := os.Remove(string(f))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
