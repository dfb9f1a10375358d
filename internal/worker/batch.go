package worker

import (
	"context"
	"fmt"
)

// Batch runs a fixed set of independent jobs on a pool and returns their
// results in submission order, whatever order they complete in.
type Batch struct {
	workers  int
	failFast bool
}

// NewBatch creates a batch runner. workers <= 0 runs every job concurrently.
func NewBatch(workers int, failFast bool) *Batch {
	return &Batch{
		workers:  workers,
		failFast: failFast,
	}
}

type indexedJob struct {
	index int
	job   Job
}

func (j *indexedJob) Execute(ctx context.Context) Result {
	return &indexedResult{index: j.index, Result: j.job.Execute(ctx)}
}

type indexedResult struct {
	index int
	Result
}

// Run executes jobs and returns one result per job, indexed like jobs.
// A nil entry means the job never ran because the batch was cancelled.
// The returned error is the first failure observed (fail-fast) or the
// failure of the lowest-indexed job, or the context error if the batch was
// cancelled before every job ran.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return []Result{}, nil
	}

	workers := b.workers
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}

	pool := NewPool(ctx, workers, b.failFast)
	pool.Start()

	for i, job := range jobs {
		pool.Submit(&indexedJob{index: i, job: job})
	}

	ordered := make([]Result, len(jobs))
	for _, r := range pool.Wait() {
		ir, ok := r.(*indexedResult)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", r)
		}
		ordered[ir.index] = ir.Result
	}

	if b.failFast {
		// Later failures are usually cancellations caused by the first one
		if err := pool.Err(); err != nil {
			return ordered, err
		}
	} else {
		for _, r := range ordered {
			if r != nil && r.GetError() != nil {
				return ordered, r.GetError()
			}
		}
	}
	for _, r := range ordered {
		if r == nil {
			if err := ctx.Err(); err != nil {
				return ordered, err
			}
			return ordered, context.Canceled
		}
	}

	return ordered, nil
}
