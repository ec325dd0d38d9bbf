package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/kartoza/rf-radar/internal/api"
	"github.com/kartoza/rf-radar/internal/config"
	"github.com/kartoza/rf-radar/internal/samples"
)

//go:embed static/*
var staticFS embed.FS

// Server holds all the components for the web application
type Server struct {
	cfg         config.Config
	httpServer  *http.Server
	router      *mux.Router
	sampleStore *samples.Store
}

// New creates a new Server with all components initialized
func New(cfg config.Config) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		router: mux.NewRouter(),
	}

	// Samples are optional: scan the configured dir and a samples/ dir next to the binary
	sampleStore, err := samples.NewStore(sampleDirs(cfg.SamplesDir)...)
	if err != nil {
		log.Printf("Warning: Samples store not available: %v", err)
	} else {
		s.sampleStore = sampleStore
	}

	s.setupRoutes()

	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// sampleDirs returns the directories to scan for sample databases
func sampleDirs(configured string) []string {
	dirs := []string{configured}
	if exe, err := executableDir(); err == nil {
		bundled := filepath.Join(exe, "samples")
		if abs, err := filepath.Abs(configured); err != nil || abs != bundled {
			dirs = append(dirs, bundled)
		}
	}
	return dirs
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(logRequests)

	// API routes
	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiHandler := api.NewHandler(s.sampleStore, s.cfg)
	apiHandler.RegisterRoutes(apiRouter)

	// Static frontend files (embedded)
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Printf("Warning: Could not load embedded static files: %v", err)
		return
	}

	// Single page: serve index.html for any non-API route without a matching file
	fileServer := http.FileServer(http.FS(staticContent))
	s.router.PathPrefix("/").Handler(pageHandler{staticContent: staticContent, fileServer: fileServer})
}

// Start begins listening for HTTP connections
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server listening on http://localhost:%d", s.cfg.Port)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.sampleStore != nil {
		s.sampleStore.Close()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// pageHandler serves the embedded page, falling back to index.html
type pageHandler struct {
	staticContent fs.FS
	fileServer    http.Handler
}

func (h pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" {
		path = "index.html"
	}

	// fs.FS paths must not have a leading slash
	cleanPath := strings.TrimPrefix(path, "/")

	_, err := fs.Stat(h.staticContent, cleanPath)
	if err != nil {
		r.URL.Path = "/"
	}

	h.fileServer.ServeHTTP(w, r)
}
