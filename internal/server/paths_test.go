package server

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileport/internal/config"
)

func TestResolvePathRejectsParentSegments(t *testing.T) {
	srv := newTestServer(t)

	inputs := []string{
		"..",
		"../a",
		"a/..",
		"a/../b",
		"a/b/../../..",
		`..\a`,
		`a\..\b`,
		"/..",
		"//../a",
		"./../a",
		"../../etc/passwd",
	}

	for _, input := range inputs {
		_, err := srv.resolvePath(input)
		assert.ErrorIs(t, err, errInvalidPath, "input %q", input)
	}
}

func TestResolvePathReducesAbsoluteInput(t *testing.T) {
	srv := newTestServer(t)

	got, err := srv.resolvePath("/etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(srv.absoluteRoot, "etc", "passwd"), got)

	got, err = srv.resolvePath(`\windows\system32`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(srv.absoluteRoot, "windows", "system32"), got)
}

func TestResolvePathEmptyMeansRoot(t *testing.T) {
	srv := newTestServer(t)

	for _, input := range []string{"", ".", "/", "  ", "//", "./"} {
		got, err := srv.resolvePath(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, srv.absoluteRoot, got, "input %q", input)
	}
}

func TestResolvePathSingleSegmentIdempotent(t *testing.T) {
	srv := newTestServer(t)

	first, err := srv.resolvePath("docs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(srv.absoluteRoot, "docs"), first)

	second, err := srv.resolvePath("docs")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolvePathRejectsNulByte(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.resolvePath("a\x00b")
	assert.ErrorIs(t, err, errInvalidPath)
}

func TestCleanRelPathNormalizes(t *testing.T) {
	cases := map[string]string{
		"a//b":     "a/b",
		"./a/./b":  "a/b",
		"/a/b/":    "a/b",
		`a\b`:      "a/b",
		"  a/b  ":  "a/b",
		"/etc":     "etc",
		`\windows`: "windows",
	}

	for input, want := range cases {
		got, err := cleanRelPath(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestIsWithinRootSiblingPrefix(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "up")
	require.NoError(t, os.MkdirAll(root, 0o755))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(&config.Config{Listen: "127.0.0.1:0", Root: root}, logger)
	require.NoError(t, err)

	within, err := srv.isWithinRoot(filepath.Join(base, "upload2"))
	require.NoError(t, err)
	assert.False(t, within, "sibling sharing a name prefix must not pass")

	within, err = srv.isWithinRoot(root)
	require.NoError(t, err)
	assert.True(t, within, "the root itself is within the root")

	within, err = srv.isWithinRoot(filepath.Join(root, "child"))
	require.NoError(t, err)
	assert.True(t, within)

	within, err = srv.isWithinRoot(filepath.Join(base, "other"))
	require.NoError(t, err)
	assert.False(t, within)
}
