// Package server serves a live document whose timestamps are refreshed in
// place and pushed to connected browsers.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/document"
	"github.com/diogenes-ai-code/timeago/internal/refresh"
	"github.com/diogenes-ai-code/timeago/internal/timestamp"
)

// ClientScriptPath is where the live-update script is served.
const ClientScriptPath = "/static/timeago.js"

// PageSource produces the HTML the document is built from.
type PageSource interface {
	Open() (io.Reader, error)
}

// Config holds the server configuration.
type Config struct {
	// Port is the TCP port to listen on (default 18080).
	Port int

	// Host is the address to bind to (default "localhost").
	Host string

	// Document is the page being served.
	Document *document.Document

	// Source rebuilds the document on reload (optional).
	Source PageSource

	// Parser converts raw timestamps (default timestamp.DefaultConfig()).
	Parser *timestamp.Parser

	// Interval between refreshes (default refresh.DefaultInterval).
	Interval time.Duration

	// Now overrides the refresh clock (optional).
	Now func() time.Time

	// AutoOpenBrowser opens the browser on start if true.
	AutoOpenBrowser bool

	// Logger for server events (optional).
	Logger *log.Logger
}

// Server is the HTTP server for a live document.
type Server struct {
	config     Config
	httpServer *http.Server
	router     *http.ServeMux
	logger     *log.Logger
	scheduler  *refresh.Scheduler
	hub        *hub

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a new Server with the given configuration.
func New(config Config) (*Server, error) {
	if config.Document == nil {
		return nil, fmt.Errorf("document is required")
	}

	if config.Port == 0 {
		config.Port = 18080
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[timeago-server] ", log.LstdFlags)
	}

	s := &Server{
		config: config,
		router: http.NewServeMux(),
		logger: logger,
		hub:    newHub(logger),
	}

	s.scheduler = refresh.New(refresh.Config{
		View:     config.Document,
		Parser:   config.Parser,
		Interval: config.Interval,
		Now:      config.Now,
		OnTick:   s.hub.broadcastTick,
		Logger:   log.New(logger.Writer(), "[timeago-refresh] ", logger.Flags()),
	})

	config.Document.AppendScript(ClientScriptPath)

	// Set up routes
	s.setupRoutes()

	return s, nil
}

// Scheduler returns the refresher driving the document.
func (s *Server) Scheduler() *refresh.Scheduler {
	return s.scheduler
}

// Start starts the refresher and the HTTP server. It blocks until the
// server stops.
func (s *Server) Start() error {
	addr := s.Address()

	// Create listener to get the actual address (useful if port 0 is used)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	httpServer := s.httpServer
	s.mu.Unlock()

	s.scheduler.Start(ctx)

	url := fmt.Sprintf("http://%s", listener.Addr().String())
	s.logger.Printf("Starting server at %s (refresh every %s)", url, s.scheduler.Interval())

	if s.config.AutoOpenBrowser {
		go func() {
			// Small delay to ensure server is ready
			time.Sleep(100 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				s.logger.Printf("Failed to open browser: %v", err)
			}
		}()
	}

	err = httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the refresher, disconnects live clients and gracefully
// shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer, cancel := s.httpServer, s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.scheduler.Stop()
	s.hub.closeAll()

	if httpServer == nil {
		return nil
	}
	s.logger.Printf("Shutting down server...")
	return httpServer.Shutdown(ctx)
}

// Address returns the server address (e.g., "localhost:18080").
func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
}

// openBrowser opens the default browser to the given URL.
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
