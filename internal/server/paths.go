package server

import (
	"path/filepath"
	"strings"
)

// resolvePath maps an untrusted relative path onto the storage root and
// returns the absolute location, or errInvalidPath if the input names
// anything outside the root. Resolution is all-or-nothing: callers never see
// a partially validated path. An empty input resolves to the root itself.
func (s *Server) resolvePath(rel string) (string, error) {
	cleaned, err := cleanRelPath(rel)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return s.absoluteRoot, nil
	}

	candidate := filepath.Join(s.absoluteRoot, filepath.FromSlash(cleaned))
	withinRoot, err := s.isWithinRoot(candidate)
	if err != nil {
		return "", err
	}

	if !withinRoot {
		return "", errInvalidPath
	}

	return candidate, nil
}

// cleanRelPath normalizes user input to a slash-separated relative path with
// no leading separator; "" means the root itself. Backslashes count as
// separators so traversal attempts cannot hide behind Windows-style paths.
// Empty and "." segments are dropped, which reduces absolute-looking input
// such as "/etc" to a plain relative "etc". Parent segments are never
// collapsed away: any ".." rejects the whole path.
func cleanRelPath(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if strings.ContainsRune(rel, 0) {
		return "", errInvalidPath
	}

	rel = strings.ReplaceAll(rel, "\\", "/")

	var segments []string
	for _, segment := range strings.Split(rel, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			return "", errInvalidPath
		}

		segments = append(segments, segment)
	}

	return strings.Join(segments, "/"), nil
}

// isWithinRoot reports whether target equals the root or is a descendant of
// it. The relation is decided per path segment, never by raw string prefix:
// a root of /data/up must not admit /data/upload2.
func (s *Server) isWithinRoot(target string) (bool, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(s.absoluteRoot, absTarget)
	if err != nil {
		return false, err
	}

	if rel == "." {
		return true, nil
	}

	if filepath.IsAbs(rel) {
		return false, nil
	}

	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")

	return first != "..", nil
}
