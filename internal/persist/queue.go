// internal/persist/queue.go
package persist

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrQueueClosed is returned by Flush after Close.
var ErrQueueClosed = errors.New("persist: queue closed")

// Queue moves disk writes off the capture goroutine.
// Batches are written in hand-over order by a single worker.
// Flush blocks only when the backlog is full.
type Queue struct {
	w   *Writer
	log zerolog.Logger

	mu     sync.Mutex
	closed bool
	in     chan Batch
	done   chan struct{}
}

func NewQueue(w *Writer, backlog int, log zerolog.Logger) *Queue {
	if backlog < 1 {
		backlog = 1
	}
	q := &Queue{
		w:    w,
		log:  log,
		in:   make(chan Batch, backlog),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) Flush(b Batch) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.in <- b
	return nil
}

// Close stops intake and waits for queued batches to be written.
func (q *Queue) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.in)
	}
	q.mu.Unlock()

	<-q.done
	return nil
}

func (q *Queue) run() {
	defer close(q.done)
	for b := range q.in {
		if _, err := q.w.Write(b); err != nil {
			q.log.Warn().Err(err).Str("session", b.SessionID).Msg("background flush failed, artifact lost")
		}
	}
}
