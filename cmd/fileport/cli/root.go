// Package cli implements the fileport command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fileport/internal/config"
	"fileport/internal/server"
)

// Build information set via ldflags.
var version = "dev"

// Global flags.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fileport",
	Short: "Serve a directory as a browser-accessible file manager",
	Long: `Fileport serves a single directory over HTTP: browse folders, upload and
download files, fetch whole folders as zip archives, and delete entries.

Every request path is validated against the storage root before any
filesystem access happens; traversal attempts are rejected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.Flags().String("listen", config.DefaultListen, "Address to listen on")
	rootCmd.Flags().String("root", config.DefaultRoot, "Directory to serve")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose debug logging")
	rootCmd.Version = version
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix("FILEPORT")
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := newLogger()
	gin.SetMode(gin.ReleaseMode)

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	httpSrv := &http.Server{Addr: cfg.Listen, Handler: srv.Handler()}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Listen, "root", cfg.Root)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return httpSrv.Shutdown(context.Background())
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// signalContext returns a context that is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
