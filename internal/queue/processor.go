package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"tour-booking/internal/mailer"
)

const (
	// MaxRetries is the maximum number of delivery attempts for one email.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 5 * time.Second
	// SendTimeout bounds a single delivery attempt.
	SendTimeout = 30 * time.Second
)

// Processor delivers queued emails with a fixed pool of workers.
type Processor struct {
	queue        *MemoryQueue
	sender       mailer.Sender
	workerCount  int
	retryDelay   time.Duration
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	errCh        chan error
}

// NewProcessor creates a new email job processor.
func NewProcessor(queue *MemoryQueue, sender mailer.Sender, workerCount int) *Processor {
	return &Processor{
		queue:       queue,
		sender:      sender,
		workerCount: workerCount,
		retryDelay:  RetryDelay,
		shutdownCh:  make(chan struct{}),
		errCh:       make(chan error, 1),
	}
}

// Errors reports fatal worker faults. The server treats a value here as an
// asynchronous crash and shuts down.
func (p *Processor) Errors() <-chan error {
	return p.errCh
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	slog.Info("email processor started", "workers", p.workerCount)
}

// Stop gracefully stops the processor, waiting for workers to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	slog.Info("email processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.fail(fmt.Errorf("email worker %d panicked: %v\n%s", id, r, debug.Stack()))
		}
	}()

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
				return
			}
			continue
		}
		p.processJob(ctx, job)
	}
}

// fail reports a fault without blocking; only the first one is kept.
func (p *Processor) fail(err error) {
	slog.Error("email processor fault", "error", err)
	select {
	case p.errCh <- err:
	default:
	}
}

func (p *Processor) processJob(ctx context.Context, job EmailJob) {
	msg, err := mailer.Render(job.Template, job.To, job.Name, job.URL)
	if err != nil {
		slog.Error("dropping email job", "to", job.To, "template", job.Template, "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	if err := p.sender.Send(sendCtx, msg); err != nil {
		slog.Warn("email delivery failed", "to", job.To, "attempt", job.RetryCount+1, "error", err)
		p.handleFailure(job)
		return
	}

	slog.Info("email sent", "to", job.To, "template", job.Template)
}

func (p *Processor) handleFailure(job EmailJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		slog.Error("giving up on email", "to", job.To, "template", job.Template, "attempts", job.RetryCount)
		return
	}

	delay := p.retryDelay * time.Duration(1<<uint(job.RetryCount-1))

	// Waits on shutdownCh rather than ctx so Stop abandons pending retries.
	go func() {
		select {
		case <-p.shutdownCh:
			slog.Warn("shutdown during retry delay, email dropped", "to", job.To)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				slog.Error("failed to re-enqueue email", "to", job.To, "error", err)
			}
		}
	}()
}
