package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/mrlokans/booktracker/internal/audit"
	"github.com/mrlokans/booktracker/internal/config"
	"github.com/mrlokans/booktracker/internal/database"
	auditRepo "github.com/mrlokans/booktracker/internal/database/audit"
	http_controllers "github.com/mrlokans/booktracker/internal/http"
	"github.com/mrlokans/booktracker/internal/scheduler"
	"github.com/mrlokans/booktracker/internal/services"
	"github.com/mrlokans/booktracker/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(handler http.Handler, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, kill (no param) sends SIGTERM; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so nothing is enqueued against a closing database
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// OpenDatabase opens (creating and seeding if needed) the configured database.
func OpenDatabase(cfg *config.Config) (*database.Database, error) {
	return database.NewDatabase(cfg.Database.Path, database.Options{
		LogLevel:            cfg.Database.GormLogLevel(),
		DefaultUserPassword: cfg.DefaultUser.Password,
		BcryptCost:          cfg.DefaultUser.BcryptCost,
	})
}

// NewHandler builds the API router and wraps it with CORS for the browser frontend.
func NewHandler(routerCfg http_controllers.RouterConfig, allowedOrigins []string) http.Handler {
	router := http_controllers.NewRouter(routerCfg)

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", http_controllers.RequestIDHeader},
		ExposedHeaders: []string{http_controllers.RequestIDHeader},
		MaxAge:         300,
	})(router)
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Book Tracker v%s", version)

	db, err := OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))

	// Initialize task queue and the cleanup schedule if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)

		retentionDays := cfg.Audit.RetentionDays
		cleanupScheduler = scheduler.NewAuditCleanupScheduler(cfg.Audit.CleanupSchedule, func(ctx context.Context) error {
			_, err := taskClient.Add(tasks.CleanupAuditEventsTask{RetentionDays: retentionDays}).Ctx(ctx).Save()
			return err
		})
		if err := cleanupScheduler.Start(taskCtx); err != nil {
			log.Printf("WARNING: audit cleanup disabled: %v", err)
			cleanupScheduler = nil
		}
	} else {
		log.Printf("Task queue disabled; audit events will not be pruned")
	}

	handler := NewHandler(http_controllers.RouterConfig{
		Library:    services.NewLibrary(db.DB),
		Profiles:   services.NewProfiles(db.DB),
		Stats:      services.NewStats(db.DB),
		Database:   db,
		Auditor:    auditService,
		StaticPath: cfg.UI.StaticPath,
		Version:    version,
	}, cfg.CORS.AllowedOrigins)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		auditService.Wait()
	}

	Serve(handler, cfg, onShutdown)
}
