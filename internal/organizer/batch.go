// file: internal/organizer/batch.go
// version: 1.0.0
// guid: f6a7b8c9-d0e1-f2a3-b4c5-d6e7f8a9b0c1

package organizer

import (
	"context"
	"log"
	"os"

	progressbar "github.com/schollz/progressbar/v3"
)

// Request queues one folder for processing.
type Request struct {
	FolderPath string
	Overrides  map[string]string
}

// ProcessBatch runs requests sequentially and returns one Outcome per
// request, in queue order. A failed folder is reported and skipped; the rest
// of the batch still runs. The context cancels between folders, never
// mid-move.
func (p *Processor) ProcessBatch(ctx context.Context, requests []Request, showProgress bool) []Outcome {
	outcomes := make([]Outcome, 0, len(requests))

	var bar *progressbar.ProgressBar
	if showProgress && len(requests) > 1 {
		bar = progressbar.NewOptions(len(requests),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("processing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, req := range requests {
		select {
		case <-ctx.Done():
			log.Printf("[WARN] organizer: batch cancelled after %d of %d folders",
				len(outcomes), len(requests))
			return outcomes
		default:
		}

		out := p.ProcessFolder(req.FolderPath, req.Overrides)
		if out.Err != nil {
			log.Printf("[ERROR] organizer: %s: %v", req.FolderPath, out.Err)
		}
		outcomes = append(outcomes, *out)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return outcomes
}

// Queue feeds folders to a single background worker. Watch mode uses it so
// settled inbox folders are processed one at a time, in arrival order.
type Queue struct {
	proc     *Processor
	requests chan Request
	done     chan struct{}
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(proc *Processor, buffer int) *Queue {
	if buffer <= 0 {
		buffer = 64
	}
	return &Queue{
		proc:     proc,
		requests: make(chan Request, buffer),
		done:     make(chan struct{}),
	}
}

// Enqueue adds a folder. It drops the request when the queue is full rather
// than blocking the watcher callback.
func (q *Queue) Enqueue(req Request) {
	select {
	case q.requests <- req:
	default:
		log.Printf("[WARN] organizer: queue full, dropping %s", req.FolderPath)
	}
}

// Run processes requests until the context is cancelled. It is the only
// goroutine that touches the filesystem, so folders never race each other.
func (q *Queue) Run(ctx context.Context) {
	defer close(q.done)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-q.requests:
			out := q.proc.ProcessFolder(req.FolderPath, req.Overrides)
			if out.Err != nil {
				log.Printf("[ERROR] organizer: %s: %v", req.FolderPath, out.Err)
			}
		}
	}
}

// Wait blocks until Run has returned.
func (q *Queue) Wait() {
	<-q.done
}
