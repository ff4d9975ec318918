package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/memory"
	redissession "trivia-quiz/internal/infra/redis"
	transport "trivia-quiz/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand that serves the websocket frontend.
func NewServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve quiz sessions over websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *opts)
		},
	}
}

func runServer(ctx context.Context, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := opts.port
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisClient := newRedisClient(cfg)
	gateway := buildGateway(cfg, opts, redisClient)

	history, closeHistory, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeHistory()

	var store app.SessionRepository
	if redisClient != nil {
		store = redissession.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewQuizService(store, gateway, controllerOptions(cfg, history)...)
	wsHandler := transport.NewWSHandler(service, config.TTLDuration(cfg.Trivia.NoticeTimeout, 30*time.Second))

	if err := gateway.Refresh(ctx); err != nil {
		log.Printf("warm category cache: %v", err)
	}
	scheduler := cron.New()
	if cfg.Trivia.RefreshSchedule != "" {
		if _, err := scheduler.AddFunc(cfg.Trivia.RefreshSchedule, func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := gateway.Refresh(refreshCtx); err != nil {
				log.Printf("refresh categories: %v", err)
			}
		}); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia quiz server on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
