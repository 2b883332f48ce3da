// Copyright (c) 2025 CS673 Team 4.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/CS673-Team4/calstack/cliparse"
	"github.com/CS673-Team4/calstack/consensus"
	"github.com/CS673-Team4/calstack/db"
	"github.com/CS673-Team4/calstack/gcal"
	"github.com/CS673-Team4/calstack/handlers"
	"github.com/CS673-Team4/calstack/icloudcal"
	"github.com/CS673-Team4/calstack/middleware"
	"github.com/CS673-Team4/calstack/notify"
	"github.com/CS673-Team4/calstack/router"
)

func main() {
	var err error

	// Load .env for local development; missing file is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database (sqlite for dev, postgres for deployment)
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := db.NewStore(dbConn)

	// Calendar provider for availability sync (optional)
	var provider handlers.BusyProvider
	switch cfg.CalendarProvider {
	case "google":
		provider, err = gcal.NewClient(context.Background(), slog.Default(),
			cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleAccount)
		if err != nil {
			slog.Error("google calendar client failed", "error", err)
			os.Exit(1)
		}
	case "caldav":
		provider, err = icloudcal.NewClient(context.Background(), slog.Default(),
			cfg.CalDAVUsername, cfg.CalDAVPassword, cfg.CalDAVCalendar)
		if err != nil {
			slog.Error("caldav client failed", "error", err)
			os.Exit(1)
		}
	case "":
		slog.Info("No calendar provider configured, sync stores empty busy lists")
	default:
		slog.Error("unknown calendar provider", "provider", cfg.CalendarProvider)
		os.Exit(1)
	}

	// Meeting invite notifier: SMTP when configured, log-only otherwise
	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		slog.Info("SMTP notifier enabled", "host", cfg.SMTPHost)
	} else {
		notifier = notify.LogNotifier{}
		slog.Info("SMTP unconfigured, logging invites instead")
	}

	engine := consensus.NewEngine(st, st, st, notifier, nil)

	// Create router
	mux := router.NewRouter(st, engine, provider, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
