package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Configuration errors reported before any generation runs
var (
	ErrInvalidQuestionType  = errors.New("invalid question type")
	ErrInvalidFormat        = errors.New("invalid output format")
	ErrInvalidChoices       = errors.New("choices must be between 2 and 6")
	ErrInvalidTrueFalseMode = errors.New("invalid true/false mode")
)

const (
	MinChoices = 2
	MaxChoices = 6

	FormatText = "text"
	FormatJSON = "json"

	QuestionTypeAll = "all"

	TrueFalseRandom = "random" // One item per match, polarity by coin flip
	TrueFalseBoth   = "both"   // True item plus falsified item when possible
)

// Config holds the complete factquiz configuration
type Config struct {
	Quiz        QuizConfig        `yaml:"quiz"`
	Output      OutputConfig      `yaml:"output"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// QuizConfig controls question synthesis
type QuizConfig struct {
	QuestionType  string `yaml:"question_type"`   // open, mcq, true-false or all
	Choices       int    `yaml:"choices"`         // Options per mcq item (2-6)
	Seed          int64  `yaml:"seed"`            // Seed for every random decision
	TrueFalseMode string `yaml:"true_false_mode"` // random or both
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `yaml:"format"` // text or json
	Verbose bool   `yaml:"verbose"`
}

// CacheConfig controls the rendered-result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers"`
	FilesPerSecond float64 `yaml:"files_per_second"` // 0 disables throttling
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Quiz: QuizConfig{
			QuestionType:  string(KindOpen),
			Choices:       4,
			Seed:          42,
			TrueFalseMode: TrueFalseRandom,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "factquiz-cache")
	}
	return filepath.Join(home, ".factquiz", "cache")
}

// Validate normalizes aliases and rejects values outside the supported ranges
func (c *Config) Validate() error {
	qt, err := NormalizeQuestionType(c.Quiz.QuestionType)
	if err != nil {
		return err
	}
	c.Quiz.QuestionType = qt

	if c.Quiz.Choices < MinChoices || c.Quiz.Choices > MaxChoices {
		return fmt.Errorf("%w: got %d", ErrInvalidChoices, c.Quiz.Choices)
	}

	switch strings.ToLower(c.Quiz.TrueFalseMode) {
	case TrueFalseRandom, TrueFalseBoth:
		c.Quiz.TrueFalseMode = strings.ToLower(c.Quiz.TrueFalseMode)
	default:
		return fmt.Errorf("%w: %q (want random or both)", ErrInvalidTrueFalseMode, c.Quiz.TrueFalseMode)
	}

	switch strings.ToLower(c.Output.Format) {
	case FormatText, FormatJSON:
		c.Output.Format = strings.ToLower(c.Output.Format)
	default:
		return fmt.Errorf("%w: %q (want text or json)", ErrInvalidFormat, c.Output.Format)
	}

	if c.Concurrency.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Concurrency.Workers)
	}
	if c.Concurrency.FilesPerSecond < 0 {
		return fmt.Errorf("files per second must not be negative, got %v", c.Concurrency.FilesPerSecond)
	}

	return nil
}

// NormalizeQuestionType maps accepted spellings onto open, mcq, true-false or all
func NormalizeQuestionType(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "qa":
		return string(KindOpen), nil
	case "mcq", "multiple-choice":
		return string(KindMCQ), nil
	case "true-false", "truefalse", "tf":
		return string(KindTrueFalse), nil
	case QuestionTypeAll:
		return QuestionTypeAll, nil
	default:
		return "", fmt.Errorf("%w: %q (want open, mcq, true-false or all)", ErrInvalidQuestionType, s)
	}
}

// ParseKinds expands a question type into the kinds it selects, in output order
func ParseKinds(questionType string) ([]Kind, error) {
	qt, err := NormalizeQuestionType(questionType)
	if err != nil {
		return nil, err
	}
	if qt == QuestionTypeAll {
		return append([]Kind(nil), AllKinds...), nil
	}
	return []Kind{Kind(qt)}, nil
}

// Fingerprint identifies the settings that change generated output
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("type=%s;choices=%d;seed=%d;tf=%s;format=%s",
		c.Quiz.QuestionType, c.Quiz.Choices, c.Quiz.Seed, c.Quiz.TrueFalseMode, c.Output.Format)
}
