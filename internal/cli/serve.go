package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/document"
	werrors "github.com/diogenes-ai-code/timeago/internal/errors"
	"github.com/diogenes-ai-code/timeago/internal/feed"
	"github.com/diogenes-ai-code/timeago/internal/server"
	"github.com/spf13/cobra"
)

// Serve command flags
var (
	servePort      int
	serveHost      string
	serveFile      string
	serveInterval  time.Duration
	serveSelector  string
	serveNoBrowser bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 18080)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host address to bind to (default from config, localhost)")
	serveCmd.Flags().StringVar(&serveFile, "file", "", "Serve an HTML file instead of the feed")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", 0, "Time between refreshes (default from config, 60s)")
	serveCmd.Flags().StringVar(&serveSelector, "selector", "", "Selector for timestamp elements (default from config)")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Don't auto-open browser")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a page whose timestamps stay current",
	Long: `Start an HTTP server for a page whose timestamps are refreshed on an
interval and pushed to open browsers over a WebSocket.

The page is the feed from the database unless --file is given. Reload the
page from its source with POST /api/reload.

Examples:
  timeago serve                        # Serve the feed on port 18080
  timeago serve --file page.html       # Serve an HTML file
  timeago serve --interval 10s         # Refresh every 10 seconds
  timeago serve --host 0.0.0.0         # Bind to all interfaces`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// buildSource returns the page source and a cleanup func.
func buildSource() (server.PageSource, func(), error) {
	if serveFile != "" {
		return server.FileSource{Path: serveFile}, func() {}, nil
	}

	database, err := openFeedDB()
	if err != nil {
		return nil, nil, err
	}
	return feed.NewSource(database.DB, feed.DefaultTitle, 0), func() { database.Close() }, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	source, cleanup, err := buildSource()
	if err != nil {
		return err
	}
	defer cleanup()

	page, err := source.Open()
	if err != nil {
		return err
	}
	doc, err := document.Parse(page, selectorFor(serveSelector))
	if err != nil {
		return werrors.Wrap(err, werrors.KindInvalidArgs, "failed to parse page")
	}

	host := serveHost
	if host == "" {
		host = cfg.Host
	}
	port := servePort
	if port == 0 {
		port = cfg.Port
	}
	interval := serveInterval
	if interval <= 0 {
		interval = cfg.Interval()
	}

	srv, err := server.New(server.Config{
		Port:            port,
		Host:            host,
		Document:        doc,
		Source:          source,
		Parser:          newParser(),
		Interval:        interval,
		AutoOpenBrowser: !serveNoBrowser,
	})
	if err != nil {
		return werrors.Wrap(err, werrors.KindGeneral, "failed to create server")
	}

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	url := fmt.Sprintf("http://%s", srv.Address())
	OutputLine("timeago server starting at %s (%d timestamps, refresh every %s)", url, doc.Count(), interval)
	if !serveNoBrowser {
		OutputLine("Opening browser...")
	}
	OutputLine("Press Ctrl+C to stop")

	select {
	case err := <-errChan:
		if err != nil {
			return werrors.Wrap(err, werrors.KindGeneral, "server error")
		}
	case <-stop:
		OutputLine("\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return werrors.Wrap(err, werrors.KindGeneral, "shutdown error")
		}
	}

	OutputLine("Server stopped")
	return nil
}
