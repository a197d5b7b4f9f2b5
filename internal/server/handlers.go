package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleIndex(c *gin.Context) {
	s.renderListing(c, "")
}

func (s *Server) handleFolder(c *gin.Context) {
	s.renderListing(c, c.Param("name"))
}

func (s *Server) renderListing(c *gin.Context, requested string) {
	rel, err := cleanRelPath(requested)
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}

	info, err := os.Stat(absolutePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.respondError(c, errNotFound)
			return
		}

		s.respondError(c, err)
		return
	}

	if !info.IsDir() {
		s.respondError(c, errNotFound)
		return
	}

	entries, err := s.listEntries(absolutePath)
	if err != nil {
		s.respondError(c, err)
		return
	}
	sortForView(entries)

	displayPath := "/"
	if rel != "" {
		displayPath = "/" + rel
	}

	data := browsePageData{
		Title:     displayPath,
		PathLabel: displayPath,
		Path:      rel,
		Entries:   buildEntryViews(rel, entries),
	}

	c.HTML(http.StatusOK, "browse", data)
}

func (s *Server) handleCreateFolder(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		s.respondError(c, errMissingInput)
		return
	}

	rel, err := cleanRelPath(name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if rel == "" {
		s.respondError(c, errMissingInput)
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// MkdirAll keeps creation idempotent: an existing folder is not an error.
	if err := os.MkdirAll(absolutePath, 0o755); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Debug("folder created", "path", absolutePath)
	c.Redirect(http.StatusFound, folderHref(rel))
}

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, errMissingInput)
		return
	}

	folder, err := cleanRelPath(c.PostForm("folder"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	destDir, err := s.resolvePath(folder)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Uploads never create folders implicitly; a named destination must
	// already exist.
	info, err := os.Stat(destDir)
	if err != nil || !info.IsDir() {
		s.respondError(c, errNotFound)
		return
	}

	filename, err := uploadFilename(file.Filename)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := c.SaveUploadedFile(file, filepath.Join(destDir, filename)); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Debug("file uploaded", "folder", folder, "name", filename)
	if folder == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, folderHref(folder))
}

// uploadFilename reduces a client-supplied filename to a bare name. Browsers
// send a base name, but nothing stops a handcrafted request from smuggling
// separators or parent segments in.
func uploadFilename(name string) (string, error) {
	rel, err := cleanRelPath(name)
	if err != nil {
		return "", err
	}

	base := path.Base(rel)
	if base == "." || base == "/" || base == "" {
		return "", errMissingInput
	}

	return base, nil
}

func (s *Server) handleDownload(c *gin.Context) {
	requested := c.Param("filepath")

	rel, err := cleanRelPath(requested)
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}
	if rel == "" {
		s.respondError(c, errNotFound)
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}

	info, err := os.Stat(absolutePath)
	if err != nil || info.IsDir() {
		s.respondError(c, errNotFound)
		return
	}

	c.FileAttachment(absolutePath, filepath.Base(absolutePath))
}

func (s *Server) handleDownloadFolder(c *gin.Context) {
	rel, err := cleanRelPath(c.Param("folder"))
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}
	if rel == "" {
		s.respondError(c, errNotFound)
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondError(c, asNotFound(err))
		return
	}

	info, err := os.Stat(absolutePath)
	if err != nil || !info.IsDir() {
		s.respondError(c, errNotFound)
		return
	}

	base := path.Base(rel)
	filename := archiveBaseName(base) + ".zip"

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	// The response is already streaming; a mid-archive failure can only be
	// logged, not turned into an error status.
	if err := writeFolderArchive(c.Writer, absolutePath, base); err != nil {
		s.logger.Error("archive write failed", "path", absolutePath, "error", err)
	}
}

type apiEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"isDirectory"`
}

func (s *Server) handleAPIFolder(c *gin.Context) {
	rel, err := cleanRelPath(c.Query("path"))
	if err != nil {
		s.respondJSONError(c, err)
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondJSONError(c, err)
		return
	}

	info, err := os.Stat(absolutePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.respondJSONError(c, errNotFound)
			return
		}

		s.respondJSONError(c, err)
		return
	}

	if !info.IsDir() {
		s.respondJSONError(c, errNotFound)
		return
	}

	entries, err := s.listEntries(absolutePath)
	if err != nil {
		s.respondJSONError(c, err)
		return
	}

	items := make([]apiEntry, 0, len(entries))
	for _, entry := range entries {
		items = append(items, apiEntry{Name: entry.Name, IsDir: entry.IsDir})
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "path": rel})
}

func (s *Server) handleDelete(c *gin.Context) {
	target := strings.TrimSpace(c.PostForm("target"))
	if target == "" {
		s.respondError(c, errMissingInput)
		return
	}

	rel, err := cleanRelPath(target)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if rel == "" {
		// The storage root itself is never deleted.
		s.respondError(c, errInvalidPath)
		return
	}

	absolutePath, err := s.resolvePath(rel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := removeEntry(absolutePath); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Debug("entry deleted", "path", absolutePath)

	parent := path.Dir(rel)
	if parent == "." || parent == "/" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, folderHref(parent))
}

func buildEntryViews(rel string, entries []fileEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		entryRel := path.Join(rel, entry.Name)
		view := entryView{
			Name:       entry.Name,
			IsDir:      entry.IsDir,
			Target:     entryRel,
			Size:       entry.Size,
			ModifyTime: entry.ModifyTime,
		}

		if entry.IsDir {
			view.Href = folderHref(entryRel)
			view.ArchiveHref = "/download-folder/" + url.PathEscape(entryRel)
		} else {
			view.Href = downloadHref(entryRel)
		}

		views = append(views, view)
	}

	return views
}

func folderHref(rel string) string {
	return "/folder/" + url.PathEscape(rel)
}

func downloadHref(rel string) string {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}

	return "/download/" + strings.Join(parts, "/")
}

func (s *Server) respondError(c *gin.Context, err error) {
	status, message := s.classifyError(err)
	c.String(status, message)
}

func (s *Server) respondJSONError(c *gin.Context, err error) {
	status, message := s.classifyError(err)
	c.JSON(status, gin.H{"error": message})
}

// classifyError maps an error onto its client-facing status and message.
// Internal failures surface as a generic 500; the detail stays in the log.
func (s *Server) classifyError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal server error"
	}

	var httpErr *httpError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError {
			s.logger.Error("server error", "error", err)
		} else {
			s.logger.Debug("request rejected", "error", err)
		}

		return httpErr.Status, httpErr.Message
	}

	s.logger.Error("unexpected error", "error", err)

	return http.StatusInternalServerError, "internal server error"
}
