// Package query answers one question about every element by splitting the
// periodic table into ranges, querying each range concurrently and merging
// the answers in atomic-number order.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/elementa/internal/cache"
	"github.com/ppiankov/elementa/internal/element"
	"github.com/ppiankov/elementa/internal/llm"
	"github.com/ppiankov/elementa/internal/model"
	"github.com/ppiankov/elementa/internal/prompt"
	"github.com/ppiankov/elementa/internal/worker"
)

// DefaultChunkTimeout bounds a single chunk request
const DefaultChunkTimeout = 3 * time.Minute

// Engine runs range-partitioned queries against one provider.
// An Engine is safe for concurrent use.
type Engine struct {
	provider     llm.Provider
	chunkSize    int
	workers      int
	chunkTimeout time.Duration
	failFast     bool
	logger       *zap.Logger
	cache        cache.Cache
}

// Option configures an Engine
type Option func(*Engine)

// WithChunkSize sets how many elements each request covers
func WithChunkSize(size int) Option {
	return func(e *Engine) {
		e.chunkSize = size
	}
}

// WithWorkers caps the number of concurrent requests. 0 sends every chunk at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithChunkTimeout sets the per-request deadline. 0 disables it.
func WithChunkTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.chunkTimeout = d
	}
}

// WithFailFast controls whether the first failed chunk cancels the rest
func WithFailFast(failFast bool) Option {
	return func(e *Engine) {
		e.failFast = failFast
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCache memoizes results of identical queries. Failed queries are never cached.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// New creates an engine for provider
func New(provider llm.Provider, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}

	e := &Engine{
		provider:     provider,
		chunkSize:    DefaultChunkSize,
		chunkTimeout: DefaultChunkTimeout,
		failFast:     true,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", e.chunkSize)
	}
	if e.chunkTimeout < 0 {
		return nil, fmt.Errorf("chunk timeout must not be negative, got %v", e.chunkTimeout)
	}
	return e, nil
}

// Categorize places every element in one of categories
func (e *Engine) Categorize(ctx context.Context, question string, categories []string) (model.ResultSet, error) {
	return e.Run(ctx, model.Categorize{Question: question, Categories: categories})
}

// Rate scores every element between rangeMin and rangeMax inclusive
func (e *Engine) Rate(ctx context.Context, question string, rangeMin, rangeMax int) (model.ResultSet, error) {
	return e.Run(ctx, model.Rate{Question: question, Min: rangeMin, Max: rangeMax})
}

// AskOpen asks an open question about every element
func (e *Engine) AskOpen(ctx context.Context, question string) (model.ResultSet, error) {
	return e.Run(ctx, model.OpenAnswer{Question: question})
}

// Run executes mode over the whole table. On error the returned ResultSet
// is empty; partial answers are never returned.
func (e *Engine) Run(ctx context.Context, mode model.Mode) (model.ResultSet, error) {
	if mode == nil {
		return model.ResultSet{}, fmt.Errorf("%w: no mode given", model.ErrInvalidMode)
	}
	if err := mode.Validate(); err != nil {
		return model.ResultSet{}, err
	}

	if rs, ok := e.lookup(mode); ok {
		e.logger.Debug("query served from cache", zap.String("mode", string(mode.Kind())))
		return rs, nil
	}

	chunks, err := Partition(element.Count, e.chunkSize)
	if err != nil {
		return model.ResultSet{}, err
	}

	jobs := make([]worker.Job, len(chunks))
	for i, chunk := range chunks {
		text, err := prompt.Build(mode, chunk)
		if err != nil {
			return model.ResultSet{}, err
		}
		jobs[i] = &chunkJob{
			provider: e.provider,
			mode:     mode,
			chunk:    chunk,
			prompt:   text,
			timeout:  e.chunkTimeout,
			logger:   e.logger,
		}
	}

	e.logger.Info("query started",
		zap.String("mode", string(mode.Kind())),
		zap.String("provider", e.provider.Name()),
		zap.Int("chunks", len(chunks)))
	start := time.Now()

	results, err := worker.NewBatch(e.workers, e.failFast).Run(ctx, jobs)
	if err != nil {
		var chunkErr *ChunkError
		if !errors.As(err, &chunkErr) {
			// cancelled before a chunk could report
			err = llm.AsAdapterError(e.provider.Name(), "dispatch", err)
		}
		e.logger.Warn("query failed", zap.String("mode", string(mode.Kind())), zap.Error(err))
		return model.ResultSet{}, err
	}

	answers := make([]model.AnswerRecord, 0, element.Count)
	var modelName string
	for _, r := range results {
		cr, ok := r.(*chunkResult)
		if !ok {
			return model.ResultSet{}, fmt.Errorf("unexpected result type %T", r)
		}
		answers = append(answers, cr.records...)
		if modelName == "" {
			modelName = cr.model
		}
	}

	if err := validateResultSet(answers); err != nil {
		return model.ResultSet{}, err
	}

	rs := model.ResultSet{
		Mode:     mode.Kind(),
		Question: mode.Prompt(),
		Model:    modelName,
		Answers:  answers,
	}

	e.logger.Info("query completed",
		zap.String("mode", string(mode.Kind())),
		zap.Int("answers", rs.Len()),
		zap.Duration("duration", time.Since(start)))

	if e.cache != nil {
		e.cache.Set(mode, rs)
	}
	return rs, nil
}

func (e *Engine) lookup(mode model.Mode) (model.ResultSet, bool) {
	if e.cache == nil {
		return model.ResultSet{}, false
	}
	return e.cache.Get(mode)
}
