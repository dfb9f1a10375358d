package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ppiankov/elementa/internal/cache"
	"github.com/ppiankov/elementa/internal/element"
	"github.com/ppiankov/elementa/internal/llm"
	"github.com/ppiankov/elementa/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var rangePattern = regexp.MustCompile(`atomic numbers (\d+) to (\d+) inclusive`)

// stubProvider answers each chunk through respond
type stubProvider struct {
	respond func(ctx context.Context, first, last int) (*llm.StructuredResponse, error)
	calls   atomic.Int32
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.StructuredResponse, error) {
	p.calls.Add(1)
	if len(req.Messages) != 1 {
		return nil, fmt.Errorf("expected one message, got %d", len(req.Messages))
	}
	m := rangePattern.FindStringSubmatch(req.Messages[0].Text)
	if m == nil {
		return nil, fmt.Errorf("prompt has no range: %q", req.Messages[0].Text)
	}
	first, _ := strconv.Atoi(m[1])
	last, _ := strconv.Atoi(m[2])
	return p.respond(ctx, first, last)
}

// answering returns a stub that answers every element of a chunk with value
func answering(value string) *stubProvider {
	return &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			return toolResponse(recordsFor(first, last, value)), nil
		},
	}
}

func recordsFor(first, last int, value string) []model.AnswerRecord {
	var out []model.AnswerRecord
	for n := first; n <= last; n++ {
		id, _ := element.ByAtomicNumber(n)
		out = append(out, model.AnswerRecord{AtomicNumber: n, Element: id.Name, AnswerValue: value})
	}
	return out
}

func toolResponse(records []model.AnswerRecord) *llm.StructuredResponse {
	payload, err := json.Marshal(model.ElementDescriptions{ElementDescriptions: records})
	if err != nil {
		panic(err)
	}
	return &llm.StructuredResponse{
		Model: "stub-model",
		Blocks: []llm.ContentBlock{
			{Type: llm.BlockText, Text: "Here you go."},
			{Type: llm.BlockToolUse, Name: llm.DescribeElementsTool, Input: payload},
		},
		StopReason: "tool_use",
	}
}

func newEngine(t *testing.T, p llm.Provider, opts ...Option) *Engine {
	t.Helper()
	e, err := New(p, opts...)
	require.NoError(t, err)
	return e
}

func assertComplete(t *testing.T, rs model.ResultSet) {
	t.Helper()
	require.Equal(t, element.Count, rs.Len())
	for i, a := range rs.Answers {
		id, _ := element.ByAtomicNumber(i + 1)
		assert.Equal(t, i+1, a.AtomicNumber)
		assert.Equal(t, id.Name, a.Element)
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(answering("ok"), WithChunkSize(0))
	assert.Error(t, err)

	_, err = New(answering("ok"), WithChunkTimeout(-time.Second))
	assert.Error(t, err)
}

func TestEngine_AskOpen_EndToEnd(t *testing.T) {
	p := answering("ok")
	e := newEngine(t, p)

	rs, err := e.AskOpen(context.Background(), "Is it shiny?")
	require.NoError(t, err)

	assert.Equal(t, int32(4), p.calls.Load())
	assert.Equal(t, model.KindOpen, rs.Mode)
	assert.Equal(t, "Is it shiny?", rs.Question)
	assert.Equal(t, "stub-model", rs.Model)
	assertComplete(t, rs)
	for _, a := range rs.Answers {
		assert.Equal(t, "ok", a.AnswerValue)
	}
}

func TestEngine_ChunkSize(t *testing.T) {
	p := answering("ok")
	e := newEngine(t, p, WithChunkSize(50), WithWorkers(2))

	rs, err := e.AskOpen(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.calls.Load())
	assertComplete(t, rs)
}

func TestEngine_MergeOrderIgnoresCompletionOrder(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			// earlier chunks finish later
			delay := time.Duration(120-first) * time.Millisecond / 4
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			records := recordsFor(first, last, strconv.Itoa(first))
			for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
				records[i], records[j] = records[j], records[i]
			}
			return toolResponse(records), nil
		},
	}
	e := newEngine(t, p)

	rs, err := e.AskOpen(context.Background(), "q")
	require.NoError(t, err)
	assertComplete(t, rs)

	a, ok := rs.Get(31)
	require.True(t, ok)
	assert.Equal(t, "31", a.AnswerValue)
}

func TestEngine_InvalidMode(t *testing.T) {
	p := answering("ok")
	e := newEngine(t, p)
	ctx := context.Background()

	rs, err := e.Categorize(ctx, "Can I eat it?", nil)
	assert.ErrorIs(t, err, model.ErrInvalidMode)
	assert.Zero(t, rs.Len())

	_, err = e.Categorize(ctx, "Can I eat it?", []string{"Yes", " "})
	assert.ErrorIs(t, err, model.ErrInvalidMode)

	_, err = e.Rate(ctx, "Shininess", 5, 1)
	assert.ErrorIs(t, err, model.ErrInvalidMode)

	_, err = e.Run(ctx, nil)
	assert.ErrorIs(t, err, model.ErrInvalidMode)

	assert.Zero(t, p.calls.Load(), "invalid modes must not dispatch")
}

func TestEngine_Rate(t *testing.T) {
	e := newEngine(t, answering("7"))
	rs, err := e.Rate(context.Background(), "Shininess", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, model.KindRate, rs.Mode)
	assertComplete(t, rs)

	e = newEngine(t, answering("11"))
	_, err = e.Rate(context.Background(), "Shininess", 1, 10)
	assert.ErrorIs(t, err, ErrIncompleteResult)

	e = newEngine(t, answering("very"))
	_, err = e.Rate(context.Background(), "Shininess", 1, 10)
	assert.ErrorIs(t, err, ErrIncompleteResult)

	for _, v := range []string{"NaN", "nan", "0x1p2", "Inf"} {
		e = newEngine(t, answering(v))
		rs, err := e.Rate(context.Background(), "Shininess", 1, 10)
		assert.ErrorIs(t, err, ErrIncompleteResult, "rating %q", v)
		assert.Zero(t, rs.Len())
	}
}

func TestEngine_Categorize(t *testing.T) {
	e := newEngine(t, answering(" risky "))
	rs, err := e.Categorize(context.Background(), "Can I eat it?", []string{"Yes", "Risky", "Definitely Not"})
	require.NoError(t, err)
	assertComplete(t, rs)
	assert.Equal(t, "Risky", rs.Answers[0].AnswerValue)

	e = newEngine(t, answering("Maybe"))
	_, err = e.Categorize(context.Background(), "Can I eat it?", []string{"Yes", "No"})
	assert.ErrorIs(t, err, ErrIncompleteResult)
}

func TestEngine_MissingRecords(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			records := recordsFor(first, last, "ok")
			if first == 1 {
				// drop atomic number 15
				records = append(records[:14], records[15:]...)
			}
			return toolResponse(records), nil
		},
	}
	e := newEngine(t, p)

	rs, err := e.AskOpen(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteResult)
	assert.Contains(t, err.Error(), "15")
	assert.Zero(t, rs.Len())

	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
	assert.Equal(t, model.ChunkRange{First: 1, Last: 30}, chunkErr.Chunk)
}

func TestEngine_DuplicateRecords(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			records := recordsFor(first, last, "ok")
			if first == 61 {
				records[1] = records[0]
			}
			return toolResponse(records), nil
		},
	}
	e := newEngine(t, p)

	_, err := e.AskOpen(context.Background(), "q")
	assert.ErrorIs(t, err, ErrIncompleteResult)
}

func TestEngine_WrongElementName(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			records := recordsFor(first, last, "ok")
			if first == 91 {
				records[0].Element = "Unobtainium"
			}
			return toolResponse(records), nil
		},
	}
	e := newEngine(t, p)

	_, err := e.AskOpen(context.Background(), "q")
	assert.ErrorIs(t, err, ErrIncompleteResult)
}

func TestEngine_NoInvocation(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			return &llm.StructuredResponse{
				Model:  "stub-model",
				Blocks: []llm.ContentBlock{{Type: llm.BlockText, Text: "I'd rather not."}},
			}, nil
		},
	}
	e := newEngine(t, p)

	rs, err := e.AskOpen(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAdapter)
	assert.ErrorIs(t, err, llm.ErrNoInvocation)
	assert.Zero(t, rs.Len())
}

func TestEngine_FailFastCancelsOtherChunks(t *testing.T) {
	var cancelled atomic.Int32
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			if first == 1 {
				return nil, errors.New("boom")
			}
			select {
			case <-ctx.Done():
				cancelled.Add(1)
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return toolResponse(recordsFor(first, last, "ok")), nil
			}
		},
	}
	e := newEngine(t, p)

	start := time.Now()
	_, err := e.AskOpen(context.Background(), "q")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second, "other chunks should be cancelled")

	assert.ErrorIs(t, err, llm.ErrAdapter)
	assert.Contains(t, err.Error(), "boom")

	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
	assert.Equal(t, 1, chunkErr.Chunk.First)
	assert.LessOrEqual(t, cancelled.Load(), int32(3))
}

func TestEngine_WithoutFailFastReportsLowestChunk(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			switch first {
			case 91:
				return nil, errors.New("late failure")
			case 31:
				time.Sleep(20 * time.Millisecond)
				return nil, errors.New("early failure")
			}
			return toolResponse(recordsFor(first, last, "ok")), nil
		},
	}
	e := newEngine(t, p, WithFailFast(false))

	_, err := e.AskOpen(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, int32(4), p.calls.Load())

	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
	assert.Equal(t, model.ChunkRange{First: 31, Last: 60}, chunkErr.Chunk)
	assert.Contains(t, err.Error(), "early failure")
}

func TestEngine_ChunkTimeout(t *testing.T) {
	p := &stubProvider{
		respond: func(ctx context.Context, first, last int) (*llm.StructuredResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	e := newEngine(t, p, WithChunkTimeout(20*time.Millisecond))

	_, err := e.AskOpen(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAdapter)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEngine_ParentCancelled(t *testing.T) {
	p := answering("ok")
	e := newEngine(t, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rs, err := e.AskOpen(ctx, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAdapter)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rs.Len())
}

func TestEngine_Cache(t *testing.T) {
	p := answering("ok")
	mem := cache.NewMemoryCache(time.Minute)
	e := newEngine(t, p, WithCache(mem))
	ctx := context.Background()

	first, err := e.Rate(ctx, "Shininess", 1, 10)
	require.Error(t, err) // "ok" is not a rating
	assert.Zero(t, mem.Len(), "failures are not cached")
	assert.Zero(t, first.Len())

	first, err = e.AskOpen(ctx, "q")
	require.NoError(t, err)
	calls := p.calls.Load()

	second, err := e.AskOpen(ctx, "q")
	require.NoError(t, err)
	assert.Equal(t, calls, p.calls.Load(), "identical query should be served from cache")
	assert.Equal(t, first, second)

	// Callers own what they receive; a hit is never affected by earlier edits
	second.Answers[0].AnswerValue = "edited"
	third, err := e.AskOpen(ctx, "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", third.Answers[0].AnswerValue)

	_, err = e.AskOpen(ctx, "another question")
	require.NoError(t, err)
	assert.Greater(t, p.calls.Load(), calls)
	assert.Equal(t, 2, mem.Len())
}
