package server

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"fileport/internal/config"
)

type Server struct {
	engine       *gin.Engine
	absoluteRoot string
	logger       *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	absoluteRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}

	browseTemplate, err := newBrowseTemplate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	// Route on the raw path so nested folder names can travel inside a
	// single :name parameter as %2F.
	engine.UseRawPath = true
	engine.SetHTMLTemplate(browseTemplate)

	srv := &Server{
		engine:       engine,
		absoluteRoot: absoluteRoot,
		logger:       logger,
	}

	engine.GET("/", srv.handleIndex)
	engine.GET("/folder/:name", srv.handleFolder)
	engine.POST("/folder", srv.handleCreateFolder)
	engine.POST("/upload", srv.handleUpload)
	engine.GET("/download/*filepath", srv.handleDownload)
	engine.GET("/download-folder/:folder", srv.handleDownloadFolder)
	engine.GET("/api/folder", srv.handleAPIFolder)
	engine.POST("/delete", srv.handleDelete)

	return srv, nil
}

// Handler exposes the router for an http.Server or a test harness.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
