// Package shadow manages the temporary files that hold historical file
// content for the viewer, and reclaims the ones left behind.
package shadow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/masmgr/git-chdiff/config"
)

// Store creates and reclaims shadow files in a single directory.
// Every file it creates is named <Prefix><random><Suffix>.
type Store struct {
	Dir    string
	Prefix string
	Suffix string
}

// NewStore returns a Store configured from cfg.
func NewStore(cfg config.ShadowConfig) Store {
	return Store{Dir: cfg.Dir, Prefix: cfg.Prefix, Suffix: cfg.Suffix}
}

// Create writes content to a new, uniquely named shadow file and returns its path.
func (s Store) Create(content []byte) (string, error) {
	f, err := os.CreateTemp(s.Dir, s.Prefix+"*"+s.Suffix)
	if err != nil {
		return "", fmt.Errorf("create shadow file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write shadow file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close shadow file: %w", err)
	}

	return f.Name(), nil
}

// Remove deletes a shadow file. A file that is already gone is not an error.
func (s Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Pattern returns the glob that matches names produced by this store's prefix.
func (s Store) Pattern() string {
	return escapeGlob(s.Prefix) + "*"
}

// Matches reports whether a base file name carries this store's prefix.
func (s Store) Matches(name string) bool {
	ok, err := doublestar.Match(s.Pattern(), name)
	return err == nil && ok
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// shadowPath joins a directory entry name onto the store directory.
func (s Store) shadowPath(name string) string {
	return filepath.Join(s.Dir, name)
}
