package notificaties

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// AsyncPublisher decouples event delivery from the request path: Publish
// enqueues, a worker goroutine drains. A full inbox drops the event with a
// log line rather than stalling the request.
type AsyncPublisher struct {
	inbox  chan Event
	sink   Publisher
	logger *slog.Logger
}

func NewAsyncPublisher(sink Publisher, logger *slog.Logger, buffer int) *AsyncPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &AsyncPublisher{
		inbox:  make(chan Event, buffer),
		sink:   sink,
		logger: logger,
	}
}

func (p *AsyncPublisher) Publish(_ context.Context, event Event) error {
	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("notificatie inbox full, dropping event",
			"kanaal", event.Kanaal,
			"resource", event.Resource,
			"actie", event.Actie,
		)
	}
	return nil
}

// Run drains the inbox until the context is cancelled.
func (p *AsyncPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-p.inbox:
			deliverCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.sink.Publish(deliverCtx, event); err != nil {
				p.logger.Error("notificatie delivery failed",
					"error", err,
					"kanaal", event.Kanaal,
					"resource", event.Resource,
				)
			}
			cancel()
		}
	}
}

// MemoryPublisher records events for assertions in tests and is the fallback
// sink when no brokers are configured.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
