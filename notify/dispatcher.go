package notify

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultQueueSize bounds the outbound email queue
const DefaultQueueSize = 64

// Dispatcher is the fire-and-forget delivery queue. Request handlers enqueue
// and return immediately; a single worker drains the queue and logs failures.
// Nothing is retried and nothing propagates back to the caller.
type Dispatcher struct {
	sender Sender
	queue  chan Email

	wg      sync.WaitGroup
	once    sync.Once
	closing sync.Once
}

// NewDispatcher creates a dispatcher with a bounded queue
func NewDispatcher(sender Sender, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		sender: sender,
		queue:  make(chan Email, size),
	}
}

// Start launches the delivery worker
func (d *Dispatcher) Start() {
	d.once.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e Email) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("panic delivering email", "to", e.To, "panic", r)
		}
	}()

	if err := d.sender.Send(e); err != nil {
		zap.S().Errorw("failed to send email", "to", e.To, "subject", e.Subject, "error", err)
		return
	}
	zap.S().Infow("email sent", "to", e.To, "subject", e.Subject)
}

// Enqueue queues an email without blocking. A full queue drops the message
// and reports false so backpressure shows up in logs rather than latency.
func (d *Dispatcher) Enqueue(e Email) bool {
	select {
	case d.queue <- e:
		return true
	default:
		zap.S().Warnw("email queue full, dropping message", "to", e.To, "subject", e.Subject)
		return false
	}
}

// Close stops accepting mail and waits for in-flight deliveries
func (d *Dispatcher) Close() {
	d.closing.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
