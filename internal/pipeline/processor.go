// Package pipeline drives many documents through extraction and
// classification with a bounded worker pool, and materializes the renamed
// output files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/markma27/pdfsaver/internal/engine"
	"github.com/markma27/pdfsaver/internal/filename"
	"github.com/markma27/pdfsaver/internal/model"
	"github.com/markma27/pdfsaver/internal/pdftext"
)

// defaultWorkers bounds concurrent document processing when the caller
// does not choose a level.
const defaultWorkers = 4

// Processor runs the extract-classify-rename flow over document batches.
type Processor struct {
	Engine    *engine.Engine
	Extractor *pdftext.Extractor
	Workers   int
	Policy    filename.Policy
}

// Options controls one Process run.
type Options struct {
	// OutputDir receives the renamed files; empty leaves outputs next to
	// their sources.
	OutputDir string
	// Rename moves files instead of copying them.
	Rename bool
	// DryRun computes names without touching the filesystem.
	DryRun bool
	// OnProgress, when set, is called after each file with the number of
	// files finished so far and the total.
	OnProgress func(done, total int)
}

// Result is the outcome for one input file.
type Result struct {
	Err            error
	Path           string
	NewName        string
	OutputPath     string
	Classification model.ClassificationResult
	HasText        bool
}

// Process classifies every path with bounded concurrency and returns one
// result per input, in input order. Per-file failures are recorded on the
// result and do not stop the batch; only context cancellation aborts.
func (p *Processor) Process(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	claims := newNameClaims()
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processOne(gctx, path, opts, claims)
			if opts.OnProgress != nil {
				opts.OnProgress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("processing aborted: %w", err)
	}
	return results, nil
}

func (p *Processor) processOne(ctx context.Context, path string, opts Options, claims *nameClaims) Result {
	result := Result{Path: path}

	doc, err := p.Extractor.ExtractFile(ctx, path)
	if err != nil {
		result.Err = fmt.Errorf("extract: %w", err)
		return result
	}
	result.HasText = doc.HasText

	result.Classification = p.Engine.Classify(ctx, doc.Text)
	if !doc.HasText {
		// No text layer means the all-null classification is an artifact
		// of missing input, not a confident answer.
		result.Classification.NeedsReview = true
	}

	builder := filename.Builder{Policy: p.Policy}
	result.NewName = builder.Build(result.Classification.Fields)

	if opts.DryRun {
		return result
	}

	outputPath, err := p.materialize(path, result.NewName, opts, claims)
	if err != nil {
		result.Err = err
		return result
	}
	result.OutputPath = outputPath
	return result
}

// materialize copies (or moves) the source file to its new name, picking a
// numbered variant when the name is already taken.
func (p *Processor) materialize(srcPath, newName string, opts Options, claims *nameClaims) (string, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(srcPath)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	target := claims.claim(dir, newName)

	if opts.Rename {
		if err := os.Rename(srcPath, target); err != nil {
			return "", fmt.Errorf("rename: %w", err)
		}
		slog.Debug("moved document", "from", srcPath, "to", target)
		return target, nil
	}

	if err := copyFile(srcPath, target); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	slog.Debug("copied document", "from", srcPath, "to", target)
	return target, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// nameClaims serializes output-name allocation so concurrent workers never
// race two documents onto the same target path.
type nameClaims struct {
	taken map[string]bool
	mu    sync.Mutex
}

func newNameClaims() *nameClaims {
	return &nameClaims{taken: make(map[string]bool)}
}

// claim reserves a free path for name in dir: name.pdf, then name_2.pdf,
// name_3.pdf, and so on past both reserved names and files already on
// disk.
func (c *nameClaims) claim(dir, name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := strings.TrimSuffix(name, ".pdf")
	candidate := filepath.Join(dir, name)
	for n := 2; c.unavailable(candidate); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d.pdf", base, n))
	}
	c.taken[candidate] = true
	return candidate
}

func (c *nameClaims) unavailable(path string) bool {
	if c.taken[path] {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}
