package server

import (
	"errors"
	"os"
	"sort"
	"strings"
)

type fileEntry struct {
	Name       string
	IsDir      bool
	Size       int64
	ModifyTime int64
}

// listEntries reads one full snapshot of absDir. Ordering follows the
// filesystem's enumeration order; nothing is cached between calls.
func (s *Server) listEntries(absDir string) ([]fileEntry, error) {
	dirEntries, err := os.ReadDir(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotFound
		}

		return nil, err
	}

	entries := make([]fileEntry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		entries = append(entries, fileEntry{
			Name:       entry.Name(),
			IsDir:      entry.IsDir(),
			Size:       info.Size(),
			ModifyTime: info.ModTime().Unix(),
		})
	}

	return entries, nil
}

// sortForView orders entries directories-first, then case-insensitively by
// name. Only the HTML view sorts; the JSON API reports raw enumeration order.
func sortForView(entries []fileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}

		left := strings.ToLower(entries[i].Name)
		right := strings.ToLower(entries[j].Name)

		return left < right
	})
}

// removeEntry deletes the file or directory tree at abs. The target must
// exist; a vanished target reports errNotFound.
func removeEntry(abs string) error {
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errNotFound
		}

		return err
	}

	return os.RemoveAll(abs)
}
