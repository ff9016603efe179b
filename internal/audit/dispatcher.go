package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"studyprep/backend/internal/audit/domain"
)

const dispatchTimeout = 5 * time.Second

// Dispatcher is an asynchronous Recorder: events are queued onto a bounded
// channel and forwarded to the next Recorder by a single background worker.
// When the queue is full the event is dropped and counted, never blocking the
// login path. The owner must Close it; Close drains the queue first.
type Dispatcher struct {
	next      Recorder
	ch        chan *domain.Event
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher returns a running Dispatcher forwarding to next with the given
// queue size.
func NewDispatcher(next Recorder, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	if next == nil {
		next = Discard{}
	}
	d := &Dispatcher{
		next: next,
		ch:   make(chan *domain.Event, bufferSize),
		done: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case e := <-d.ch:
			d.forward(e)
		case <-d.done:
			for {
				select {
				case e := <-d.ch:
					d.forward(e)
				default:
					return
				}
			}
		}
	}
}

// forward delivers on a detached context: the originating request may already
// be finished by the time the event is written.
func (d *Dispatcher) forward(e *domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	d.next.Record(ctx, e)
}

// Record enqueues the event, dropping it when the queue is full or the
// dispatcher is closed.
func (d *Dispatcher) Record(_ context.Context, e *domain.Event) {
	if d == nil || e == nil || d.closed.Load() {
		return
	}
	select {
	case d.ch <- e:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}

// Close stops the worker after draining queued events. Safe to call more than
// once.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}
