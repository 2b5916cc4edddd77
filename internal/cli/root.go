package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/factquiz/internal/logger"
	"github.com/ppiankov/factquiz/internal/model"
	"github.com/ppiankov/factquiz/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	noCache bool
	cfgErr  error
)

// errMissingBook is returned when no book path is given
var errMissingBook = errors.New("missing required argument: path to a book text file")

// rootCmd generates a quiz for a single book
var rootCmd = &cobra.Command{
	Use:   "factquiz <book>",
	Short: "factquiz - generate quiz items from simple declarative sentences",
	Long: `factquiz reads a plain-text (or HTML) book, finds simple declarative
sentences such as "X is Y", "X was born in Y", "X是Y" or "X出生于Y", and turns
them into quiz items: open questions, multiple choice and true/false.

It is a rule-based pattern matcher. Sentences that fit no template are skipped.

Example:
  factquiz book.txt
  factquiz book.txt --question-type mcq --choices 4
  factquiz book.txt --question-type all --format json --seed 7`,
	Args:          requireBook,
	RunE:          runGenerate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "factquiz v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := model.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.factquiz/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	flags.BoolVar(&noCache, "no-cache", false, "disable result cache")

	// Quiz flags are persistent so batch and config show honour them too
	flags.String("question-type", defaults.Quiz.QuestionType, "question type: open, mcq, true-false or all")
	flags.String("format", defaults.Output.Format, "output format: text or json")
	flags.Int("choices", defaults.Quiz.Choices, "options per multiple-choice item (2-6)")
	flags.Int64("seed", defaults.Quiz.Seed, "seed for choice order and true/false selection")
	flags.String("true-false-mode", defaults.Quiz.TrueFalseMode, "true/false generation: random (one item) or both (true and falsified)")

	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("quiz.question_type", flags.Lookup("question-type"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))
	_ = viper.BindPFlag("quiz.choices", flags.Lookup("choices"))
	_ = viper.BindPFlag("quiz.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("quiz.true_false_mode", flags.Lookup("true-false-mode"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	cfgErr = nil
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".factquiz"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// FACTQUIZ_QUIZ_CHOICES=5 overrides quiz.choices
	viper.SetEnvPrefix("FACTQUIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cfgErr = fmt.Errorf("read config: %w", err)
		}
	}
}

func setDefaults(d *model.Config) {
	viper.SetDefault("quiz.question_type", d.Quiz.QuestionType)
	viper.SetDefault("quiz.choices", d.Quiz.Choices)
	viper.SetDefault("quiz.seed", d.Quiz.Seed)
	viper.SetDefault("quiz.true_false_mode", d.Quiz.TrueFalseMode)
	viper.SetDefault("output.format", d.Output.Format)
	viper.SetDefault("output.verbose", d.Output.Verbose)
	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
	viper.SetDefault("concurrency.files_per_second", d.Concurrency.FilesPerSecond)
}

// loadConfig resolves flags, environment, config file and defaults, then validates
func loadConfig() (*model.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}

	cfg := model.DefaultConfig()
	cfg.Quiz.QuestionType = viper.GetString("quiz.question_type")
	cfg.Quiz.Choices = viper.GetInt("quiz.choices")
	cfg.Quiz.Seed = viper.GetInt64("quiz.seed")
	cfg.Quiz.TrueFalseMode = viper.GetString("quiz.true_false_mode")
	cfg.Output.Format = viper.GetString("output.format")
	cfg.Output.Verbose = viper.GetBool("output.verbose")
	cfg.Cache.Enabled = viper.GetBool("cache.enabled") && !noCache
	cfg.Cache.Dir = expandHome(viper.GetString("cache.dir"))
	cfg.Cache.MemoryTTL = viper.GetDuration("cache.memory_ttl")
	cfg.Cache.DiskTTL = viper.GetDuration("cache.disk_ttl")
	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	cfg.Concurrency.FilesPerSecond = viper.GetFloat64("concurrency.files_per_second")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// requireBook prints usage when the book path is missing
func requireBook(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		_ = cmd.Usage()
		return errMissingBook
	default:
		return fmt.Errorf("accepts 1 book path, received %d", len(args))
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("using config file", "path", used)
	}
	log.Debug("generating quiz",
		"book", args[0],
		"question_type", cfg.Quiz.QuestionType,
		"format", cfg.Output.Format,
		"choices", cfg.Quiz.Choices,
		"seed", cfg.Quiz.Seed,
		"cache", cfg.Cache.Enabled,
	)

	p := pipeline.NewPipeline(cfg, log)
	result, err := p.ProcessFile(context.Background(), args[0])
	if err != nil {
		return err
	}

	log.Debug("quiz ready", "items", result.Items, "cached", result.Cached)

	if _, err := cmd.OutOrStdout().Write(result.Output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
