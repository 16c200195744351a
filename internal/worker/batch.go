package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caselith/lexfmt/internal/model"
)

// Runner defines the interface for formatting a single draft file
type Runner interface {
	FormatFile(ctx context.Context, path string) (*model.FormatReport, error)
}

// draftExtensions lists the file extensions ProcessDir picks up
var draftExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// FormatJob represents a single draft formatting job
type FormatJob struct {
	Path   string
	Runner Runner
}

// Execute executes the format job
func (j *FormatJob) Execute(ctx context.Context) Result {
	report, err := j.Runner.FormatFile(ctx, j.Path)
	if err != nil {
		return &FormatResult{
			Path:   j.Path,
			Report: nil,
			Error:  err,
		}
	}
	return &FormatResult{
		Path:   j.Path,
		Report: report,
		Error:  nil,
	}
}

// FormatResult represents the result of a format job
type FormatResult struct {
	Path   string
	Report *model.FormatReport
	Error  error
}

// GetError returns the error from the format result
func (r *FormatResult) GetError() error {
	return r.Error
}

// BatchProcessor formats multiple draft files concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessFiles formats multiple draft files concurrently. Results are
// sorted by path so batch output is stable across runs.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FormatResult {
	if len(paths) == 0 {
		return []*FormatResult{}
	}

	// Create worker pool
	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit jobs
	for _, path := range paths {
		job := &FormatJob{
			Path:   path,
			Runner: b.runner,
		}
		pool.Submit(job)
	}

	// Wait for all jobs to complete
	results := pool.Wait()

	// Convert to FormatResults
	formatResults := make([]*FormatResult, len(results))
	for i, result := range results {
		formatResults[i] = result.(*FormatResult)
	}

	sort.Slice(formatResults, func(i, j int) bool {
		return formatResults[i].Path < formatResults[j].Path
	})

	return formatResults
}

// ProcessDir formats every draft file directly under dir. Subdirectories
// and files without a draft extension are skipped.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*FormatResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !draftExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ProcessList reads draft paths from a list file and formats them concurrently
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*FormatResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadPathsFromFile reads draft paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
