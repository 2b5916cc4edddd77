package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/factquiz/internal/pipeline"
	"golang.org/x/time/rate"
)

// Generator produces a rendered quiz for one book
type Generator interface {
	ProcessFile(ctx context.Context, path string) (*pipeline.Result, error)
}

// BookJob generates the quiz for one book
type BookJob struct {
	Index     int
	Path      string
	Generator Generator
}

// Execute runs the generator for the job's book
func (j *BookJob) Execute(ctx context.Context) Result {
	result, err := j.Generator.ProcessFile(ctx, j.Path)
	return &BookResult{
		Index:  j.Index,
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// BookResult is the outcome of one BookJob
type BookResult struct {
	Index  int
	Path   string
	Result *pipeline.Result
	Error  error
}

func (r *BookResult) GetError() error {
	return r.Error
}

// BatchProcessor generates quizzes for many books concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
	limiter     *rate.Limiter // nil when unthrottled
}

// NewBatchProcessor creates a batch processor. A positive filesPerSecond throttles
// how fast books are handed to workers; burst defaults to 1.
func NewBatchProcessor(generator Generator, concurrency int, filesPerSecond float64, burst int) *BatchProcessor {
	var limiter *rate.Limiter
	if filesPerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(filesPerSecond), burst)
	}

	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessPaths generates every book and returns results in input order.
// Books never started because ctx ended carry the context error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*BookResult {
	if len(paths) == 0 {
		return []*BookResult{}
	}

	jobs := func(yield func(Job) bool) {
		for i, path := range paths {
			if b.limiter != nil && b.limiter.Wait(ctx) != nil {
				return
			}
			if !yield(&BookJob{Index: i, Path: path, Generator: b.generator}) {
				return
			}
		}
	}

	results := make([]*BookResult, len(paths))
	for r := range NewPool(b.concurrency).Run(ctx, jobs) {
		br := r.(*BookResult)
		results[br.Index] = br
	}

	for i, r := range results {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = errors.New("not processed")
			}
			results[i] = &BookResult{Index: i, Path: paths[i], Error: err}
		}
	}

	return results
}

// ProcessFile reads book paths from a list file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*BookResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read book list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads book paths, one per line, skipping blanks, comments and duplicates
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

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
