package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/elementa/internal/llm"
	"github.com/ppiankov/elementa/internal/model"
	"github.com/ppiankov/elementa/internal/worker"
)

// chunkJob dispatches one chunk to the provider
type chunkJob struct {
	provider llm.Provider
	mode     model.Mode
	chunk    model.ChunkRange
	prompt   string
	timeout  time.Duration
	logger   *zap.Logger
}

// chunkResult is the outcome of one chunk dispatch
type chunkResult struct {
	chunk    model.ChunkRange
	model    string
	records  []model.AnswerRecord
	duration time.Duration
	err      error
}

func (r *chunkResult) GetError() error {
	return r.err
}

// Execute runs the request, decodes the single structured invocation and
// validates the records against the chunk and the mode
func (j *chunkJob) Execute(ctx context.Context) worker.Result {
	start := time.Now()
	result := &chunkResult{chunk: j.chunk}

	records, modelName, err := j.dispatch(ctx)
	result.duration = time.Since(start)
	if err != nil {
		result.err = &ChunkError{Chunk: j.chunk, Err: err}
		if !errors.Is(err, context.Canceled) {
			j.logger.Warn("chunk failed",
				zap.Stringer("chunk", j.chunk),
				zap.Duration("duration", result.duration),
				zap.Error(err))
		}
		return result
	}

	result.model = modelName
	result.records = records
	j.logger.Debug("chunk completed",
		zap.Stringer("chunk", j.chunk),
		zap.Int("records", len(records)),
		zap.Duration("duration", result.duration))
	return result
}

func (j *chunkJob) dispatch(ctx context.Context) ([]model.AnswerRecord, string, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	j.logger.Debug("dispatching chunk", zap.Stringer("chunk", j.chunk), zap.String("provider", j.provider.Name()))

	resp, err := j.provider.Complete(ctx, llm.CompletionRequest{
		Messages: llm.UserMessage(j.prompt),
		Schema:   llm.ElementDescriptionsSchema(),
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("no response within %v: %w", j.timeout, err)
		}
		return nil, "", llm.AsAdapterError(j.provider.Name(), "complete", err)
	}

	records, err := llm.DecodeDescriptions(resp)
	if err != nil {
		return nil, "", llm.AsAdapterError(j.provider.Name(), "decode", err)
	}

	records, err = validateChunk(j.mode, j.chunk, records)
	if err != nil {
		return nil, "", err
	}
	return records, resp.Model, nil
}
