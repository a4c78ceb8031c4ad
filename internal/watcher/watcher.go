// Package watcher polls an inbox directory for exported price files and
// generates the delivery archive for each one.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"relatorios/internal/config"
	"relatorios/internal/pipeline"
)

type Service struct {
	cfg     config.Config
	reports *pipeline.ReportService
}

func NewService(cfg config.Config, reports *pipeline.ReportService) *Service {
	return &Service{cfg: cfg, reports: reports}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(ctx); err != nil {
			fmt.Printf("watcher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.WatchInboxDir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.cfg.WatchInboxDir)
	if err != nil {
		return err
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		if err := s.processFile(ctx, entry.Name()); err != nil {
			fmt.Printf("watcher: %s: %v\n", entry.Name(), err)
			continue
		}
		processed++
	}

	if processed > 0 {
		fmt.Printf("watcher cycle done processed=%d\n", processed)
	}
	return nil
}

// processFile generates the archive for one inbox file and moves the
// input into done/ so it is never picked up again.
func (s *Service) processFile(ctx context.Context, name string) error {
	inputPath := filepath.Join(s.cfg.WatchInboxDir, name)
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	result, err := s.reports.Generate(ctx, raw, time.Now())
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Printf("watcher: %s: %s\n", name, warning)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outputPath := filepath.Join(s.cfg.OutputDir, stem+"_"+result.ArchiveName)
	if err := os.WriteFile(outputPath, result.Archive, 0o644); err != nil {
		return err
	}

	doneDir := filepath.Join(s.cfg.WatchInboxDir, "done")
	if err := os.MkdirAll(doneDir, 0o755); err != nil {
		return err
	}
	return os.Rename(inputPath, filepath.Join(doneDir, name))
}
