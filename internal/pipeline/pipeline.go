package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/factquiz/internal/cache"
	"github.com/ppiankov/factquiz/internal/extract"
	"github.com/ppiankov/factquiz/internal/logger"
	"github.com/ppiankov/factquiz/internal/model"
	"github.com/ppiankov/factquiz/internal/quiz"
)

// Pipeline runs segment → match → synthesize → assemble → render for one book
type Pipeline struct {
	matcher  *extract.Matcher
	renderer *Renderer
	cache    cache.Cache // nil when caching is disabled
	config   *model.Config
	log      *logger.Logger
}

// NewPipeline creates a pipeline; cfg must already be validated
func NewPipeline(cfg *model.Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		matcher:  extract.NewMatcher(),
		renderer: NewRenderer(),
		cache:    c,
		config:   cfg,
		log:      log,
	}
}

// Result is the rendered output for one book
type Result struct {
	Path   string
	Output []byte
	Items  int
	Cached bool
}

// cachedResult is the envelope stored in the cache
type cachedResult struct {
	Items  int    `json:"items"`
	Output []byte `json:"output"`
}

// Generate builds the result set for text. It is a pure function of text and configuration.
func (p *Pipeline) Generate(text string) (model.ResultSet, error) {
	kinds, err := model.ParseKinds(p.config.Quiz.QuestionType)
	if err != nil {
		return model.ResultSet{}, err
	}

	sentences := extract.Sentences(text)

	total := 0
	for range sentences {
		total++
	}

	// Pool must be complete before any distractor is drawn
	matches := p.matcher.MatchAll(sentences)
	pool := quiz.NewPool(matches)
	synth := quiz.NewSynthesizer(p.matcher.Templates(), pool, p.config.Quiz)

	var items []model.QuestionItem
	for _, m := range matches {
		items = append(items, synth.Synthesize(m, kinds)...)
	}

	rs := quiz.Assemble(items, kinds)
	rs.Sentences = total
	rs.Matches = len(matches)

	p.log.Debug("generated quiz",
		"sentences", rs.Sentences,
		"matches", rs.Matches,
		"predicates", pool.Len(),
		"items", rs.Len(),
		"kinds", kinds,
	)

	return rs, nil
}

// Render serializes a result set in the configured format
func (p *Pipeline) Render(rs model.ResultSet) ([]byte, error) {
	return p.renderer.Render(rs, p.config.Output.Format)
}

// ProcessText generates and renders text, consulting the cache when enabled
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key string
	if p.cache != nil {
		key = cache.Key(text, p.config.Fingerprint())
		if raw, found := p.cache.Get(key); found {
			var hit cachedResult
			if err := json.Unmarshal(raw, &hit); err == nil {
				p.log.Debug("cache hit", "key", key, "items", hit.Items)
				return &Result{Output: hit.Output, Items: hit.Items, Cached: true}, nil
			}
			p.log.Warn("discarding unreadable cache entry", "key", key)
			if err := p.cache.Delete(key); err != nil {
				p.log.Warn("cache delete failed", "key", key, "error", err)
			}
		}
	}

	rs, err := p.Generate(text)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	out, err := p.Render(rs)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	if p.cache != nil {
		raw, err := json.Marshal(cachedResult{Items: rs.Len(), Output: out})
		if err == nil {
			err = p.cache.Set(key, raw, 0)
		}
		if err != nil {
			// Cache failures never fail generation
			p.log.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return &Result{Output: out, Items: rs.Len()}, nil
}

// ProcessFile loads a book from disk and processes it
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	text, err := extract.LoadText(path)
	if err != nil {
		return nil, err
	}
	log := p.log.With("book", path)
	log.Debug("loaded book", "bytes", len(text))

	result, err := p.ProcessText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("book done", "items", result.Items, "cached", result.Cached)
	result.Path = path
	return result, nil
}
