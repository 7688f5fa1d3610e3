package wifi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CredStore persists recovered network credentials as a flat JSON file
// mapping SSID to password. It is read and written whole; callers on
// the interactive path never touch it concurrently.
type CredStore struct {
	Path string
}

// NewCredStore returns a store backed by path.
func NewCredStore(path string) *CredStore {
	return &CredStore{Path: path}
}

// Load reads all credentials. A missing file is an empty store.
func (c *CredStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds := map[string]string{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

// Save writes the full credential map, creating the parent directory
// when needed.
func (c *CredStore) Save(creds map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Add records one SSID/password pair.
func (c *CredStore) Add(ssid, password string) error {
	creds, err := c.Load()
	if err != nil {
		return err
	}
	creds[ssid] = password
	return c.Save(creds)
}

// SSIDs lists stored network names in sorted order.
func (c *CredStore) SSIDs() ([]string, error) {
	creds, err := c.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(creds))
	for ssid := range creds {
		names = append(names, ssid)
	}
	sort.Strings(names)
	return names, nil
}
