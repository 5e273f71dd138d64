package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher sends mail from a single background worker. Enqueue never
// blocks: when the buffer is full the message is dropped.
type Dispatcher struct {
	mailer Mailer
	queue  chan Message
	wg     sync.WaitGroup

	// OnDrop is called for every dropped message, if set.
	OnDrop func()
}

func NewDispatcher(mailer Mailer, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := d.mailer.Send(ctx, m); err != nil {
			slog.Error("notify send failed", "to", m.To, "subject", m.Subject, "error", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Enqueue(m Message) bool {
	select {
	case d.queue <- m:
		return true
	default:
		slog.Warn("notify queue full, dropping message", "to", m.To)
		if d.OnDrop != nil {
			d.OnDrop()
		}
		return false
	}
}

// Close stops accepting messages and waits for the queue to drain.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
