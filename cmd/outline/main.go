// Command outline writes a JSON outline for every supported document in
// an input directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docoutline/internal/batch"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	fs.StringVar(&cfg.InputDir, "in", cfg.InputDir, "input directory (INPUT_DIR)")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory (OUTPUT_DIR)")
	fs.IntVar(&cfg.WorkerCount, "workers", cfg.WorkerCount, "parallel documents (WORKER_COUNT)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error (LOG_LEVEL)")
	report := fs.Bool("report", false, "print the batch report as JSON on stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 2
	}

	models, client, err := pipeline.LoadModels(cfg)
	if err != nil {
		log.Error("failed to load models", "error", err)
		return 1
	}
	if client != nil {
		defer client.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(pipeline.NewOutliner(cfg.Layout(), models, log), cfg.WorkerCount, log)
	rep, err := runner.Run(ctx, cfg.InputDir, cfg.OutputDir)
	if *report {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "outline: %v\n", err)
		return 1
	}
	if len(rep.Failed) > 0 {
		return 3
	}
	return 0
}
