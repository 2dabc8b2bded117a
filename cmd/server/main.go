package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/sqlite"
	"github.com/charmbracelet/log"
)

func main() {
	isProd := flag.Bool("prod", false, "load .env instead of .env.dev")
	flag.Parse()

	// config
	cfg := pomomo.LoadConfig(*isProd)

	// logger
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid log level", "level", cfg.LogLevel, "err", err)
	}
	log.SetLevel(level)
	log.SetReportCaller(!*isProd)

	// db
	log.Info("opening db", "url", cfg.DatabaseURL)
	db, err := sqlite.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed database open", "err", err)
	}
	defer db.Close() //nolint

	tx, dbGetter := txStdLib.NewTransactor(
		db,
		txStdLib.NestedTransactionsSavepoints,
	)
	repoLogger := log.Default().WithPrefix("sqlite")
	srv := newServer(
		sqlite.NewTodoRepo(dbGetter, repoLogger),
		sqlite.NewNoteRepo(dbGetter, repoLogger),
		tx,
		log.Default(),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to serve", "err", err)
		}
	}()

	// graceful shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info("terminating server")
	shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownTimeoutC()
	if err := httpServer.Shutdown(shutdownTimeout); err != nil {
		log.Error("failed to shut down gracefully", "err", err)
	}
}
