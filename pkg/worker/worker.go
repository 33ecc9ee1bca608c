// Package worker runs codec operations on a dedicated goroutine and speaks
// a correlation-ID request/response protocol with its driver.
//
// One worker processes one operation at a time; requests queue up to the
// configured depth. Each submitted request gets its own response stream
// carrying zero or more progress messages and exactly one terminal message,
// after which the stream is closed. A canceled request never delivers a
// success response.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mecodix/dontsee/pkg/metrics"
	"github.com/mecodix/dontsee/pkg/stego"
)

// ErrQueueFull means the worker's request queue is at capacity.
var ErrQueueFull = errors.New("worker queue full")

// ErrDuplicateID means a request with the same correlation ID is already in
// flight.
var ErrDuplicateID = errors.New("duplicate request id")

// ErrStopped means the worker's Run loop has exited.
var ErrStopped = errors.New("worker stopped")

// DefaultQueueDepth bounds pending requests when no depth is configured.
const DefaultQueueDepth = 16

// responseBuffer sizes each request's response stream: 20 progress steps
// plus the terminal message, with headroom.
const responseBuffer = 24

type submission struct {
	ctx context.Context
	req Request
	out chan Response
}

// Worker executes codec requests serially on its own goroutine.
type Worker struct {
	codec   *stego.Codec
	metrics metrics.CodecMetrics
	queue   chan submission

	mu      sync.Mutex
	pending map[string]struct{}
	stopped bool
}

// New creates a worker with the given queue depth (DefaultQueueDepth when
// zero or negative). Metrics may be nil.
func New(queueDepth int, m metrics.CodecMetrics) *Worker {
	if queueDepth <= 0 {
		queueDepth = DefaultQueueDepth
	}
	return &Worker{
		codec:   stego.NewCodec(),
		metrics: m,
		queue:   make(chan submission, queueDepth),
		pending: make(map[string]struct{}),
	}
}

// Run processes queued requests until ctx is canceled. It is the worker's
// single background thread of execution; call it once, typically in its own
// goroutine. Requests still queued at shutdown receive a Canceled terminal
// response.
func (w *Worker) Run(ctx context.Context) {
	defer w.drain()
	for {
		// Shutdown wins over pending work when both are ready.
		select {
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-ctx.Done():
			return
		case sub := <-w.queue:
			w.serve(sub)
		}
	}
}

// Submit enqueues a request and returns its response stream. The stream is
// closed after the terminal response. ctx cancels both queue wait and the
// operation itself.
func (w *Worker) Submit(ctx context.Context, req Request) (<-chan Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	switch req.Op {
	case OpScan, OpEncode, OpDecode:
	default:
		return nil, fmt.Errorf("unknown op %q", req.Op)
	}

	if err := w.track(req.ID); err != nil {
		return nil, err
	}

	sub := submission{ctx: ctx, req: req, out: make(chan Response, responseBuffer)}
	select {
	case w.queue <- sub:
		return sub.out, nil
	default:
		w.untrack(req.ID)
		return nil, ErrQueueFull
	}
}

// Do submits a request and blocks until its terminal response, forwarding
// progress to onProgress (which may be nil). It returns the terminal
// response, or an error if the request could not be submitted.
func (w *Worker) Do(ctx context.Context, req Request, onProgress func(percent int)) (Response, error) {
	stream, err := w.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case resp, open := <-stream:
			if !open {
				return nil, ErrStopped
			}
			if p, ok := resp.(Progress); ok {
				if onProgress != nil {
					onProgress(p.Percent)
				}
				continue
			}
			// Drain the closed stream before returning the terminal
			// response so the request table entry is gone.
			for range stream {
			}
			return resp, nil
		}
	}
}

func (w *Worker) track(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrStopped
	}
	if _, exists := w.pending[id]; exists {
		return ErrDuplicateID
	}
	w.pending[id] = struct{}{}
	return nil
}

func (w *Worker) untrack(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, id)
}

// drain rejects everything still queued once Run exits.
func (w *Worker) drain() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	for {
		select {
		case sub := <-w.queue:
			sub.out <- ErrorResult{ID: sub.req.ID, Kind: "Canceled", Message: "worker stopped"}
			close(sub.out)
			w.untrack(sub.req.ID)
		default:
			return
		}
	}
}

func (w *Worker) serve(sub submission) {
	defer close(sub.out)
	defer w.untrack(sub.req.ID)

	op := string(sub.req.Op)
	w.metricStart(op)
	start := time.Now()

	terminal := w.execute(sub)
	sub.out <- terminal

	kind := ""
	if e, isErr := terminal.(ErrorResult); isErr {
		kind = e.Kind
	}
	w.metricEnd(op, kind, time.Since(start))
}

func (w *Worker) execute(sub submission) Response {
	req := sub.req

	// Progress forwarding is best-effort: a slow consumer drops updates
	// rather than stalling the embed loop.
	progress := func(percent int) {
		select {
		case sub.out <- Progress{ID: req.ID, Percent: percent}:
		default:
		}
	}

	if err := sub.ctx.Err(); err != nil {
		return ErrorResult{ID: req.ID, Kind: "Canceled", Message: err.Error()}
	}

	switch req.Op {
	case OpScan:
		sig, err := w.codec.Scan(req.Pixels, req.Width, req.Height)
		if err != nil {
			return errorResult(req.ID, err)
		}
		return ScanResult{ID: req.ID, Signature: sig}

	case OpEncode:
		err := w.codec.Encode(sub.ctx, req.Pixels, req.Width, req.Height, req.Plaintext, req.Password, progress)
		if err != nil {
			return errorResult(req.ID, err)
		}
		w.metricPayload(string(req.Op), len(req.Plaintext))
		return EncodeResult{ID: req.ID, Pixels: req.Pixels}

	case OpDecode:
		text, err := w.codec.Decode(sub.ctx, req.Pixels, req.Width, req.Height, req.Password, progress)
		if err != nil {
			return errorResult(req.ID, err)
		}
		w.metricPayload(string(req.Op), len(text))
		return DecodeResult{ID: req.ID, Text: text}
	}

	return ErrorResult{ID: req.ID, Kind: "Internal", Message: fmt.Sprintf("unknown op %q", req.Op)}
}

func errorResult(id string, err error) ErrorResult {
	if code, ok := stego.CodeOf(err); ok {
		return ErrorResult{ID: id, Kind: code.String(), Message: err.Error()}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorResult{ID: id, Kind: "Canceled", Message: err.Error()}
	}
	return ErrorResult{ID: id, Kind: "Internal", Message: err.Error()}
}

func (w *Worker) metricStart(op string) {
	if w.metrics != nil {
		w.metrics.RecordRequestStart(op)
	}
}

func (w *Worker) metricEnd(op, kind string, d time.Duration) {
	if w.metrics != nil {
		w.metrics.RecordRequestEnd(op)
		w.metrics.RecordOperation(op, kind, d)
	}
}

func (w *Worker) metricPayload(op string, n int) {
	if w.metrics != nil {
		w.metrics.RecordPayloadBytes(op, n)
	}
}
