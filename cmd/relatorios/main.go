package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"relatorios/internal/config"
	"relatorios/internal/pipeline"
	"relatorios/internal/seasonality"
	"relatorios/internal/storage"
	"relatorios/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "exported price file (@-delimited txt)")
		out := fs.String("out", cfg.OutputDir, "output directory")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		raw, err := os.ReadFile(*input)
		must(err)

		svc := pipeline.NewReportService(db, cfg)
		result, err := svc.Generate(context.Background(), raw, time.Now())
		must(err)

		must(os.MkdirAll(*out, 0o755))
		outputPath := filepath.Join(*out, result.ArchiveName)
		must(os.WriteFile(outputPath, result.Archive, 0o644))

		for _, warning := range result.Warnings {
			fmt.Printf("aviso: %s\n", warning)
		}
		fmt.Printf("run done period=%s rows=%d output=%s\n", result.Period, result.RowsParsed, outputPath)
	case "watch":
		svc := pipeline.NewReportService(db, cfg)
		w := watcher.NewService(cfg, svc)
		must(w.Run(context.Background()))
	case "seasonality:sync":
		svc := seasonality.NewSyncService(db, cfg)
		count, err := svc.Sync(context.Background())
		must(err)
		fmt.Printf("seasonality sync complete: %d rows\n", count)
	case "seasonality:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "reference workbook (xlsx)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}
		blob, err := os.ReadFile(*file)
		must(err)
		rows, err := seasonality.ImportXLSX(blob)
		must(err)
		must(db.UpsertSeasonality(rows))
		fmt.Printf("seasonality import complete: %d rows\n", len(rows))
	case "seasonality:list":
		rows, err := db.ListSeasonality()
		must(err)
		for _, r := range rows {
			fmt.Printf("%s\t%s\t%s\t%s\n", r.InternalCode, r.ExternalCode, r.Unit, r.ClientSpec)
		}
		fmt.Printf("total: %d rows\n", len(rows))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: relatorios <command>")
	fmt.Println("commands:")
	fmt.Println("  run --input=arquivo.txt [--out=./out]")
	fmt.Println("  watch")
	fmt.Println("  seasonality:sync")
	fmt.Println("  seasonality:import --file=referencia.xlsx")
	fmt.Println("  seasonality:list")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
