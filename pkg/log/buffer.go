package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to transporters on a background goroutine.
// When the queue is full the oldest queued entry is discarded so request
// handlers never block on logging.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	dropped      atomic.Int64
	closed       atomic.Bool
	stop         chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
}

// NewBuffer starts a delivery goroutine with a queue of the given capacity.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffer{
		queue:        make(chan Entry, capacity),
		transporters: transporters,
		stop:         make(chan struct{}),
	}
	b.wg.Add(1)
	go b.run()
	return b
}

// Send enqueues entry. It is a no-op after Close.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}
	for attempt := 0; attempt < 2; attempt++ {
		select {
		case b.queue <- entry:
			return
		default:
		}
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
	b.dropped.Add(1)
}

// DroppedCount is the number of entries lost to overflow.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close stops the worker, delivers whatever is still queued and closes
// every transporter. Subsequent calls do nothing.
func (b *Buffer) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		close(b.stop)
		b.wg.Wait()

		b.drain()

		for _, t := range b.transporters {
			if err := t.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "log transporter %q close failed: %v\n", t.Name(), err)
			}
		}
	})
}

func (b *Buffer) run() {
	defer b.wg.Done()
	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		case <-b.stop:
			return
		}
	}
}

func (b *Buffer) drain() {
	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		default:
			return
		}
	}
}

func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(os.Stderr, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}
