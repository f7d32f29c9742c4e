package surface

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Job is one batch of highlight spans for a row range, stamped with a
// monotonically increasing sequence number so consumers can detect and
// discard batches that were overtaken by a later structural mutation.
type Job struct {
	Seq  uint64
	Rows map[int][]Span
}

// Queue applies highlight jobs to a Surface outside the mutation's
// critical section. Application order follows enqueue order, but nothing
// synchronizes it with later SetLines calls; the surface must tolerate
// stale spans.
type Queue struct {
	surface Surface
	seq     atomic.Uint64
	jobs    chan Job
	done    chan struct{}
	closing sync.Once
	wg      sync.WaitGroup
}

// NewQueue starts a queue draining into s.
func NewQueue(s Surface) *Queue {
	q := &Queue{
		surface: s,
		jobs:    make(chan Job, 64),
		done:    make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *Queue) drain() {
	for job := range q.jobs {
		for row, spans := range job.Rows {
			for _, sp := range spans {
				if err := q.surface.ApplyHighlight(row, sp.ByteStart, sp.ByteEnd, sp.Group); err != nil {
					slog.Warn("highlight apply failed", "row", row, "seq", job.Seq, "err", err)
				}
			}
		}
		q.wg.Done()
	}
	close(q.done)
}

// Enqueue submits a batch and returns its sequence number.
func (q *Queue) Enqueue(rows map[int][]Span) uint64 {
	seq := q.seq.Add(1)
	q.wg.Add(1)
	q.jobs <- Job{Seq: seq, Rows: rows}
	return seq
}

// Flush blocks until every batch enqueued so far has been applied.
func (q *Queue) Flush() {
	q.wg.Wait()
}

// Close stops the queue after draining pending jobs.
func (q *Queue) Close() {
	q.closing.Do(func() {
		close(q.jobs)
		<-q.done
	})
}
