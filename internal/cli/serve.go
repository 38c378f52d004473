package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	heatstack "github.com/mrmchughes/home-energy-analysis-tool"
	"github.com/mrmchughes/home-energy-analysis-tool/catalog"
	"github.com/mrmchughes/home-energy-analysis-tool/internal/config"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve the story catalog",
		Example: `  heat-stories serve
  heat-stories serve --port 8080 --prefix /stories
  heat-stories serve --catalog.stories_file stories.yml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for key, flag := range map[string]string{
				"server.port":         "port",
				"server.host":         "host",
				"catalog.path_prefix": "prefix",
				"catalog.watch":       "watch",
			} {
				if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", cfg.Server.Addr())
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Server.Addr(), err)
			}

			return serve(ctx, listener, cfg, logger)
		},
	}

	cmd.Flags().IntP("port", "p", 6006, "port to serve on")
	cmd.Flags().String("host", "localhost", "host to bind to")
	cmd.Flags().String("prefix", "", "path prefix to mount the catalog at, e.g. /stories")
	cmd.Flags().BoolP("watch", "w", false, "reload the story file on change")

	return cmd
}

// serve runs the catalog on listener until ctx is done
func serve(ctx context.Context, listener net.Listener, cfg *config.Config, logger *slog.Logger) error {
	instance, err := newInstance(cfg, logger)
	if err != nil {
		return err
	}
	defer instance.Close()

	if cfg.Catalog.Watch {
		go watchStories(ctx, cfg.Catalog, instance, logger)
	}

	srv := &http.Server{
		Handler:           newServeMux(instance, cfg.Catalog),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Closing the instance ends open action streams so Shutdown finds idle connections
	srv.RegisterOnShutdown(instance.Close)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	logger.Info("Serving story catalog",
		slog.String("url", "http://"+listener.Addr().String()+cfg.Catalog.PathPrefix+"/"),
		slog.Int("stories", instance.Stories().Len()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown timed out, closing connections", slog.Any("err", err))
		return srv.Close()
	}
	return nil
}

func newServeMux(instance *heatstack.Instance, cfg config.CatalogConfig) http.Handler {
	handler := instance.Handler(cfg.PathPrefix, catalog.WithTruncateAfter(cfg.TruncateAfter))

	prefix := strings.TrimSuffix(cfg.PathPrefix, "/")
	if prefix == "" {
		return handler
	}

	mux := http.NewServeMux()
	mux.Handle(prefix+"/", http.StripPrefix(prefix, handler))
	mux.Handle(prefix, http.RedirectHandler(prefix+"/", http.StatusMovedPermanently))
	return mux
}

func watchStories(ctx context.Context, cfg config.CatalogConfig, instance *heatstack.Instance, logger *slog.Logger) {
	err := stories.Watch(ctx, cfg.StoriesFile, logger, func(fromFile []stories.Story) {
		var storyList []stories.Story
		if cfg.Builtin {
			storyList = append(storyList, stories.ButtonStories(logger)...)
		}
		instance.Stories().Replace(append(storyList, fromFile...))
	})
	if err != nil {
		logger.Error("Watching story file failed", slog.Any("err", err))
	}
}
