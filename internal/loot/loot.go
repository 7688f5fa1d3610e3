// Package loot manages the capture output tree and watches it for new
// files.
package loot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Subdirs are the per-tool capture directories under the loot root.
var Subdirs = []string{
	"nmap",
	"responder",
	"mitm",
	"deauth",
	"wifi",
	"shells",
	"captures",
}

// Store addresses a loot tree rooted at a single directory.
type Store struct {
	Root string
}

// NewStore returns a store for root without touching the filesystem.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// EnsureTree creates the loot root and every tool subdirectory.
func (s *Store) EnsureTree() error {
	for _, sub := range Subdirs {
		if err := os.MkdirAll(filepath.Join(s.Root, sub), 0o755); err != nil {
			return fmt.Errorf("create loot dir %s: %w", sub, err)
		}
	}
	return nil
}

// CapturePath builds a timestamped output path for a tool run, e.g.
// nmap/quick_20260825_142301.txt.
func (s *Store) CapturePath(subdir, prefix, ext string) string {
	name := fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
	return filepath.Join(s.Root, subdir, name)
}

// Entry is one file in the loot browser.
type Entry struct {
	Path    string
	Rel     string
	Size    int64
	ModTime time.Time
}

// List walks the tree and returns files newest first.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			rel = path
		}
		entries = append(entries, Entry{
			Path:    path,
			Rel:     rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk loot tree: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ModTime.After(entries[j].ModTime) })
	return entries, nil
}

// TotalSize sums the size of every file in the tree.
func (s *Store) TotalSize() int64 {
	entries, err := s.List()
	if err != nil {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
