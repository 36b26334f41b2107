package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/config"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/db"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/router"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/pkg/logger"
)

var serveMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the employee task tracker REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logger.New(cfg.LogFile)
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st store.Store
		if serveMemory {
			log.Info("using in-memory store, data will not survive a restart")
			st = store.NewMemoryStore()
		} else {
			if cfg.DatabaseURL == "" {
				return errors.New("missing required env: DATABASE_URL (or pass --memory)")
			}
			pool, err := db.NewPool(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			pg := store.NewPostgresStore(pool)
			if err := pg.EnsureSchema(ctx); err != nil {
				return err
			}
			st = pg
		}

		gin.SetMode(gin.ReleaseMode)
		r := gin.New()
		r.Use(gin.Recovery())
		router.Setup(r, st, cfg.JWTSecret, log)

		handler := cors.New(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}).Handler(r)

		srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

		go func() {
			log.Info("HTTP server listening", zap.String("port", cfg.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server stopped", zap.Error(err))
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "run against an in-memory store instead of Postgres")
	rootCmd.AddCommand(serveCmd)
}
