package server

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zip"
)

var (
	archiveNameStrip    = regexp.MustCompile(`[^\w\s-]`)
	archiveNameCollapse = regexp.MustCompile(`\s+`)
)

// archiveBaseName reduces a folder name to a safe archive filename:
// characters outside word, whitespace, and hyphen are dropped, then
// whitespace runs become single underscores.
func archiveBaseName(folder string) string {
	name := archiveNameStrip.ReplaceAllString(folder, "")
	name = strings.TrimSpace(name)
	name = archiveNameCollapse.ReplaceAllString(name, "_")
	if name == "" {
		name = "archive"
	}

	return name
}

// writeFolderArchive streams absDir as a zip archive onto w. Entry paths are
// rooted at base so the archive unpacks into a single folder named after the
// one that was downloaded.
func writeFolderArchive(w io.Writer, absDir, base string) error {
	zw := zip.NewWriter(w)

	err := filepath.WalkDir(absDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(absDir, p)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}

			entryPath := filepath.ToSlash(filepath.Join(base, rel))
			_, err := zw.Create(entryPath + "/")

			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header := &zip.FileHeader{
			Name:     filepath.ToSlash(filepath.Join(base, rel)),
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		}

		entry, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(entry, f)

		return err
	})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}
