package faunad

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/faunadata/fauna/internal/api"
	"github.com/faunadata/fauna/internal/config"
	"github.com/faunadata/fauna/internal/constants"
	"github.com/faunadata/fauna/internal/logging"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/faunadata/fauna/internal/serverutil"
	"github.com/faunadata/fauna/internal/species"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	configPath string
	host       string
	port       string
	dataFile   string
	logLevel   string
}

func addServeFlags(cmd *cobra.Command, opts *serveOptions) {
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to the server config file (default ~/.config/fauna/faunad.yaml)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host, overrides the config file")
	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Listen port, overrides the config file")
	cmd.Flags().StringVar(&opts.dataFile, "data", "", "Species data file, overrides the config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func ServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the species catalogue API.

Besides the /especies routes the server exposes:
  GET /monitor        live request dashboard
  GET /stream-logs    Server-Sent Events feed of completed requests
  GET /health         liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	addServeFlags(cmd, opts)
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	config.LoadEnvFiles()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LoggingConfig(), os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, cfg, logger, nil)
}

func (o *serveOptions) apply(cfg *config.ServerConfig) error {
	if o.host != "" {
		cfg.Server.Host = o.host
	}
	if o.port != "" {
		cfg.Server.Port = config.Port(o.port)
	}
	if o.dataFile != "" {
		cfg.Species.DataFile = o.dataFile
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// Serve runs the API until ctx is cancelled. onListen, when set, receives
// the bound address.
func Serve(ctx context.Context, cfg *config.ServerConfig, logger zerolog.Logger, onListen func(net.Addr)) error {
	if _, err := os.Stat(cfg.Species.DataFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("species data file: %w", err)
		}
		logger.Warn().Str("path", cfg.Species.DataFile).Msg("Species data file not found, catalogue requests will fail until it exists")
	}

	broadcaster := monitor.NewBroadcaster(monitor.Options{
		QueueLimit:        cfg.Monitor.QueueLimit,
		Keepalive:         cfg.Monitor.Keepalive.Std(),
		ExcludePaths:      cfg.Monitor.ExcludePaths,
		TrustProxyHeaders: cfg.Monitor.TrustProxyHeaders,
		Logger:            logger,
	})

	apiServer := api.NewServer(api.Options{
		Store:       species.NewFileStore(cfg.Species.DataFile),
		Broadcaster: broadcaster,
		Logger:      logger,
		QuietPaths:  []string{"/health"},
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
		BaseContext: func(net.Listener) context.Context {
			return logging.WithLogger(context.Background(), logger)
		},
	}

	logger.Info().
		Str("version", constants.Version).
		Str("dataFile", cfg.Species.DataFile).
		Int("queueLimit", cfg.Monitor.QueueLimit).
		Msg("Starting faunad")

	err := serverutil.Run(ctx, serverutil.Config{
		Server: server,
		TLS: serverutil.TLSConfig{
			CertFile: cfg.Server.TLS.CertFile,
			KeyFile:  cfg.Server.TLS.KeyFile,
		},
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
		Logger:          logger,
		OnListen:        onListen,
		OnShutdown:      []func(){broadcaster.Close},
	})
	if err != nil {
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}
