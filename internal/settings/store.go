package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"labelpc/pkg/logging"

	"sigs.k8s.io/yaml"
)

const (
	// DefaultFileName is the settings file inside the user config directory.
	DefaultFileName = "settings.yaml"

	// KeyRecentFiles lists the most recently opened files, newest first.
	KeyRecentFiles = "recentFiles"
	// KeyLastOpenDir is the directory of the most recently opened file.
	KeyLastOpenDir = "lastOpenDir"

	// MaxRecentFiles caps the recent files list.
	MaxRecentFiles = 7
)

// DefaultPath returns ~/.config/labelpc/settings.yaml, falling back to a
// relative path when the user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("labelpc", DefaultFileName)
	}
	return filepath.Join(dir, "labelpc", DefaultFileName)
}

// Store persists GUI state between runs as a single YAML document.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]interface{}
	logger *logging.Logger
}

// NewStore creates a Store backed by path. Nothing is read until Load.
func NewStore(path string, logger *logging.Logger) *Store {
	return &Store{
		path:   path,
		values: map[string]interface{}{},
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.values = map[string]interface{}{}
			s.logger.Debug("Settings", "No settings at %s", s.path)
			return nil
		}
		return fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}

	values := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	s.values = values

	s.logger.Debug("Settings", "Loaded %d setting(s) from %s", len(values), s.path)
	return nil
}

// Save writes the current values, creating the parent directory if needed.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", s.path, err)
	}

	s.logger.Debug("Settings", "Saved %d setting(s) to %s", len(s.values), s.path)
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key. Call Save to persist it.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Clear drops every value and removes the backing file. A file that does
// not exist is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = map[string]interface{}{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file %s: %w", s.path, err)
	}

	s.logger.Info("Settings", "Cleared settings at %s", s.path)
	return nil
}

// RecentFiles returns the recent files list, newest first.
func (s *Store) RecentFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return toStrings(s.values[KeyRecentFiles])
}

// AddRecentFile moves path to the front of the recent files list and
// records its directory as the last opened one.
func (s *Store) AddRecentFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := []string{path}
	for _, p := range toStrings(s.values[KeyRecentFiles]) {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentFiles {
		recent = recent[:MaxRecentFiles]
	}
	s.values[KeyRecentFiles] = recent
	s.values[KeyLastOpenDir] = filepath.Dir(path)
}

// toStrings accepts both a []string set in memory and the []interface{}
// produced by decoding.
func toStrings(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
