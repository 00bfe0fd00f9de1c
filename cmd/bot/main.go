package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/slack-agenda-bot/internal/agenda"
	"github.com/diegoclair/slack-agenda-bot/internal/chat"
	"github.com/diegoclair/slack-agenda-bot/internal/config"
	"github.com/diegoclair/slack-agenda-bot/internal/database"
	"github.com/diegoclair/slack-agenda-bot/internal/domain/service"
	"github.com/diegoclair/slack-agenda-bot/internal/handlers"
	"github.com/diegoclair/slack-agenda-bot/internal/logger"
	"github.com/diegoclair/slack-agenda-bot/internal/scheduler"
	slackcmd "github.com/diegoclair/slack-agenda-bot/internal/slack"
	"github.com/diegoclair/slack-agenda-bot/migrator/sqlite"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	log := logger.Get()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid timezone %q: %v", cfg.Timezone, err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	slackClient := slack.New(cfg.SlackBotToken)
	chatClient := chat.New(slackClient)

	agendaClient := agenda.New(agenda.Config{
		Email:     cfg.MyGESEmail,
		Password:  cfg.MyGESPassword,
		AuthURL:   cfg.AgendaAuthURL,
		AgendaURL: cfg.AgendaAPIURL,
	})

	scheduleRepo := database.NewScheduleRepository(db)

	services := service.NewInstance(
		scheduleRepo,
		agendaClient,
		chatClient,
		cfg.SlackChannelID,
		loc,
		cfg.EveningStartHour,
		log,
	)

	sched := scheduler.New(services.Reconciler, loc, log,
		cfg.CronSpecMorning,
		cfg.CronSpecMidday,
		cfg.CronSpecEvening,
	)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	parser := slackcmd.NewParser(cfg.KeywordToday, cfg.KeywordTomorrow)
	handler := handlers.New(services.Query, parser, cfg.SlackSigningSecret, loc, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux}

	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	log.Info("Shut down gracefully")
}
