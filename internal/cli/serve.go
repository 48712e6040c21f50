package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gaze-go/internal/analysis"
	"gaze-go/internal/config"
	"gaze-go/internal/database"
	logger "gaze-go/internal/logging"
	"gaze-go/internal/models"
	"gaze-go/internal/repository"
	"gaze-go/internal/router"
	"gaze-go/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	v, err := config.Init(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	conf := config.Get()

	log, err := logger.Init(conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	config.Watch(v, log)

	catalog, err := loadCatalog(rootDir, conf.Analysis.CatalogPath)
	if err != nil {
		return err
	}

	store, err := openStore(conf, log)
	if err != nil {
		return err
	}

	renderer, err := analysis.NewRenderer(conf.Analysis.Renderer, conf.Analysis.SerializeRendering)
	if err != nil {
		return err
	}
	analyzer := analysis.NewAnalyzer(nil, renderer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services.NewSweeper(log, store, conf.Session.TTL, conf.Session.SweepInterval).Start(ctx)

	r := router.Setup(log, router.Dependencies{
		Analyzer: analyzer,
		Store:    store,
		Catalog:  catalog,
	})

	srv := &http.Server{
		Addr:    ":" + conf.Server.Port,
		Handler: r,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	log.Info("Server listening on http://localhost"+srv.Addr,
		zap.String("version", Version),
		zap.String("renderer", conf.Analysis.Renderer),
		zap.String("store", conf.Session.Store),
	)
	if err := serveHTTP(ctx, srv, ln, log); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}

// serveHTTP serves on ln until ctx is done, then shuts srv down. It returns
// only after in-flight requests have drained or shutdownTimeout has passed.
func serveHTTP(ctx context.Context, srv *http.Server, ln net.Listener, log *zap.Logger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	<-done
	return nil
}

// loadCatalog reads the task catalog, resolving relative paths against root.
// An empty path selects the built-in catalog.
func loadCatalog(root, path string) (*models.TaskCatalog, error) {
	if path == "" {
		return models.DefaultTaskCatalog(), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	catalog, err := models.LoadTaskCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load task catalog: %w", err)
	}
	return catalog, nil
}

func openStore(conf *config.Config, log *zap.Logger) (repository.SessionStore, error) {
	switch conf.Session.Store {
	case "", "memory":
		return repository.NewMemoryStore(), nil
	case "postgres":
		if err := database.Init(conf.Database, log); err != nil {
			return nil, err
		}
		return repository.NewGormStore(database.DB), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", conf.Session.Store)
	}
}
