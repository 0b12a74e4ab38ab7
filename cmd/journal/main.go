package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/remote"
	"trade-journal-go/internal/report"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "./configs", "directory holding config.yml")
	verbose := flag.Bool("v", false, "set log level to debug")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logger.Level = "debug"
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := journal.NewService(log, database.NewBlobStore(db), cfg.Journal)
	svc.Load(ctx)

	a := &app{
		journal: svc,
		console: report.NewConsole(svc.Location()),
		fetcher: remote.NewClient(cfg.Remote, log),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
	if err := a.run(ctx, flag.Args()); err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		// os.Exit skips deferred calls
		stop()
		database.Close(db)
		log.Sync()
		os.Exit(2)
	}
}
