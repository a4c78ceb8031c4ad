package main

import (
	"fmt"
	"log/slog"
	"os"

	"relatorios/internal/config"
	"relatorios/internal/pipeline"
	"relatorios/internal/server"
	"relatorios/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reports := pipeline.NewReportService(db, cfg)

	srv := server.New(cfg, reports, log)
	must(srv.ListenAndServe())
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
