package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"time"
)

// Worker processes a single document job.
type Worker struct {
	outliner *Outliner
	log      *slog.Logger
}

func NewWorker(outliner *Outliner, log *slog.Logger) *Worker {
	return &Worker{outliner: outliner, log: log}
}

// Process parses the job's file and builds its outline.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	job.SetStatus(StatusParsing, "parsing")
	src, err := w.outliner.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}
	job.SetPages(len(src.Pages))

	if err := ctx.Err(); err != nil {
		job.Fail("parsing", err)
		return
	}

	job.SetStatus(StatusOutlining, "outlining")
	out := w.outliner.Build(ctx, src)
	job.Complete(out)

	log.Info("outline complete",
		"title", out.Title,
		"pages", len(src.Pages),
		"entries", len(out.Outline),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
