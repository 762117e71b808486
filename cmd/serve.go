package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"debt-planner/config"
	api "debt-planner/http"
	"debt-planner/repository"
	"debt-planner/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var repo repository.PlanRepository
	if cfg.Store.Path != "" {
		store, err := repository.OpenPlanRepository(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening plan store: %w", err)
		}
		defer store.Close()
		repo = store
	} else {
		log.Println("no store path configured, keeping plans in memory")
		repo = repository.NewPlanRepositoryMemory()
	}

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		rc := repository.NewRedisCache(cfg.Cache.RedisAddr)
		if err := rc.Ping(cmd.Context()); err != nil {
			log.Printf("warning: redis at %s unreachable (%v), using in-process cache", cfg.Cache.RedisAddr, err)
			cache = repository.NewMockCache()
		} else {
			defer rc.Close()
			cache = rc
		}
	} else {
		cache = repository.NewMockCache()
	}

	sims := service.NewSimulationService(repo, cache)
	if cfg.Cache.TTLMinutes > 0 {
		sims.SetCacheTTL(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	}
	budgets := service.NewBudgetRecommendationService(sims)

	var limiter *api.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = api.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	srv := api.NewServer(sims, budgets, repo, limiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Println("shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
