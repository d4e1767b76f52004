package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sport_club_backend/internal/config"
	"sport_club_backend/internal/database"
	"sport_club_backend/internal/router"
	"sport_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var useMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&useMemory, "memory", false, "keep data in memory instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.InitLogger(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.GinMode)
	if cfg.UsesDefaultSecret() {
		utils.LogInfo("JWT secret is the built-in default; set JWT_SECRET in production")
	}

	var repos router.Repositories
	if useMemory {
		utils.LogInfo("Using in-memory storage; data will not survive a restart")
		repos = router.MemoryRepositories()
	} else {
		db, err := database.Open(ctx, cfg.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return err
		}
		defer db.Close()
		if _, err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		if err := database.ApplySchemaFile(ctx, db, cfg.Database.SchemaPath); err != nil {
			return err
		}
		repos = router.PostgresRepositories(db)
	}

	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Auth.LoginPerMinute)), cfg.Auth.LoginBurst)
	svcs := router.NewServices(repos, tokens, limiter)

	if _, err := svcs.Auth.EnsureBootstrapAdmin(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
		return fmt.Errorf("creating bootstrap admin: %w", err)
	}

	engine := router.NewEngine(cfg.Server.AllowedOrigins)
	router.Setup(engine, svcs, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port, "memory": useMemory})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			utils.LogError(err, "Failed to start server")
		}
		return err
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
