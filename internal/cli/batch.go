package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/factquiz/internal/logger"
	"github.com/ppiankov/factquiz/internal/model"
	"github.com/ppiankov/factquiz/internal/pipeline"
	"github.com/ppiankov/factquiz/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Generate quizzes for many books in parallel",
	Long: `Batch generates a quiz for every book listed in a file:
- One book path per line; blank lines and # comments are ignored
- Books are processed concurrently with a configurable worker count
- Each quiz is written to <output-dir>/<book>.quiz.txt (or .json)

Example:
  factquiz batch books.txt
  factquiz batch books.txt --concurrency 8 --output-dir ./quizzes --format json
  factquiz batch books.txt --files-per-second 2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	defaults := model.DefaultConfig()
	batchCmd.Flags().Int("concurrency", defaults.Concurrency.Workers, "number of concurrent workers")
	batchCmd.Flags().Float64("files-per-second", 0, "max books started per second (0 = unlimited)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./factquiz-output", "output directory for quizzes")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("concurrency.files_per_second", batchCmd.Flags().Lookup("files-per-second"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  factquiz batch\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Book list:     %s\n", listFile)
	fmt.Fprintf(stderr, "  Workers:       %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(stderr, "  Output dir:    %s\n", outputDir)
	fmt.Fprintf(stderr, "  Question type: %s\n", cfg.Quiz.QuestionType)
	fmt.Fprintf(stderr, "  Format:        %s\n", cfg.Output.Format)
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, log)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.Concurrency.FilesPerSecond, 1)

	start := time.Now()
	results, err := processor.ProcessFile(ctx, listFile)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintf(stderr, "No books listed in %s\n", listFile)
		return nil
	}

	failed := 0
	items := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(stderr, "  ✗ %s: %v\n", res.Path, res.Error)
			continue
		}

		outPath := outputPath(outputDir, res.Path, cfg.Output.Format)
		if err := os.WriteFile(outPath, res.Result.Output, 0644); err != nil {
			failed++
			log.Error("write quiz failed", "book", res.Path, "output", outPath, "error", err)
			continue
		}

		items += res.Result.Items
		note := ""
		if res.Result.Cached {
			note = " (cached)"
		}
		fmt.Fprintf(stderr, "  ✓ %s → %s (%d items)%s\n", res.Path, outPath, res.Result.Items, note)
	}

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Books: %d, failed: %d, items: %d, took %v\n", len(results), failed, items, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(stderr, "\n")

	log.Info("batch complete", "books", len(results), "failed", failed, "items", items)

	if failed > 0 {
		return fmt.Errorf("%d of %d books failed", failed, len(results))
	}
	return nil
}

// outputPath maps a book path to <dir>/<base>.quiz.<ext>
func outputPath(dir, bookPath, format string) string {
	base := filepath.Base(bookPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := "txt"
	if format == model.FormatJSON {
		ext = "json"
	}
	return filepath.Join(dir, base+".quiz."+ext)
}
