// Package queue buffers outgoing email for background delivery.
package queue

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tour-booking/internal/mailer"
)

// EmailJob is one templated email waiting to be delivered.
type EmailJob struct {
	To         string
	Name       string
	Template   string
	URL        string
	RetryCount int
}

// Validate reports whether the job can ever be delivered.
func (j EmailJob) Validate() error {
	if !strings.Contains(strings.TrimSpace(j.To), "@") {
		return fmt.Errorf("%w: recipient %q", ErrInvalidJob, j.To)
	}
	if !mailer.HasTemplate(j.Template) {
		return fmt.Errorf("%w: template %q", ErrInvalidJob, j.Template)
	}
	return nil
}

// MemoryQueue holds email jobs in a bounded channel. Mail queued when the
// process exits is lost.
type MemoryQueue struct {
	jobs     chan EmailJob
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewMemoryQueue creates a queue holding at most capacity emails.
func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		jobs:     make(chan EmailJob, capacity),
		capacity: capacity,
	}
}

// Enqueue adds an email without blocking. Undeliverable jobs are refused
// with ErrInvalidJob. The read lock is held across the send so Close cannot
// close the channel underneath it.
func (q *MemoryQueue) Enqueue(job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue blocks until an email is available, ctx is done or the queue is
// closed and drained.
func (q *MemoryQueue) Dequeue(ctx context.Context) (EmailJob, error) {
	select {
	case <-ctx.Done():
		return EmailJob{}, ctx.Err()
	case job, ok := <-q.jobs:
		if !ok {
			return EmailJob{}, ErrQueueClosed
		}
		return job, nil
	}
}

// Close stops accepting email. Already queued jobs can still be dequeued.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}

// Len returns the number of emails waiting.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Capacity returns the most emails the queue can hold.
func (q *MemoryQueue) Capacity() int {
	return q.capacity
}
