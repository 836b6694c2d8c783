// Package batch outlines every supported file in a directory and writes
// one JSON document per input.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

// Failure records one input that produced no output.
type Failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Report summarizes a batch run.
type Report struct {
	Processed []string  `json:"processed"`
	Failed    []Failure `json:"failed"`
}

// Runner processes an input directory with a fixed number of workers.
type Runner struct {
	outliner *pipeline.Outliner
	workers  int
	log      *slog.Logger
}

func NewRunner(outliner *pipeline.Outliner, workers int, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{outliner: outliner, workers: workers, log: log}
}

// Run outlines each supported file directly inside inDir and writes
// <base>.json into outDir. A failing file is recorded in the report and
// does not stop the batch. The returned error covers only problems with
// the directories themselves.
func (r *Runner) Run(ctx context.Context, inDir, outDir string) (Report, error) {
	files, err := inputFiles(inDir)
	if err != nil {
		return Report{}, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create output dir: %w", err)
	}

	r.log.Info("batch started", "input_dir", inDir, "output_dir", outDir, "files", len(files), "workers", r.workers)
	start := time.Now()

	type result struct {
		file string
		err  error
	}
	work := make(chan string)
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for range r.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range work {
				results <- result{file: name, err: r.processFile(ctx, inDir, outDir, name)}
			}
		}()
	}

feed:
	for _, name := range files {
		select {
		case work <- name:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()
	close(results)

	report := Report{Processed: []string{}, Failed: []Failure{}}
	for res := range results {
		if res.err != nil {
			r.log.Error("file failed", "file", res.file, "error", res.err)
			report.Failed = append(report.Failed, Failure{File: res.file, Error: res.err.Error()})
			continue
		}
		report.Processed = append(report.Processed, res.file)
	}
	sort.Strings(report.Processed)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].File < report.Failed[j].File })

	r.log.Info("batch finished",
		"processed", len(report.Processed),
		"failed", len(report.Failed),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, ctx.Err()
}

func (r *Runner) processFile(ctx context.Context, inDir, outDir, name string) error {
	log := r.log.With("file", name)
	start := time.Now()

	f, err := os.Open(filepath.Join(inDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := r.outliner.Outline(ctx, f, name)
	if err != nil {
		return err
	}

	dest := filepath.Join(outDir, OutputName(name))
	if err := WriteOutline(dest, out); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	log.Info("outline written", "entries", len(out.Outline), "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// OutputName maps an input file name to its JSON output name.
func OutputName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// inputFiles lists supported regular files in dir, without descending.
func inputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if parser.IsSupportedExtension(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// WriteOutline writes out as indented JSON. The file is written to a
// temporary name in the same directory and renamed into place.
func WriteOutline(dest string, out doctree.Outline) error {
	out.Normalize()

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
