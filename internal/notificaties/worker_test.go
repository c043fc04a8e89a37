package notificaties

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type WorkerSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *WorkerSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) event(resource string) Event {
	return Event{
		Kanaal:      KanaalZaken,
		Hoofdobject: "hoofdobject",
		Resource:    resource,
		ResourceID:  resource,
		Actie:       ActieCreate,
	}
}

func (s *WorkerSuite) TestAsyncPublisherDelivers() {
	sink := NewMemoryPublisher()
	publisher := NewAsyncPublisher(sink, s.logger, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = publisher.Run(ctx)
	}()

	s.Require().NoError(publisher.Publish(context.Background(), s.event("zaak")))
	s.Require().NoError(publisher.Publish(context.Background(), s.event("status")))

	s.Eventually(func() bool {
		return len(sink.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	events := sink.Events()
	s.Equal("zaak", events[0].Resource)
	s.Equal("status", events[1].Resource)

	cancel()
	<-done
}

func (s *WorkerSuite) TestAsyncPublisherDropsWhenFull() {
	sink := NewMemoryPublisher()
	publisher := NewAsyncPublisher(sink, s.logger, 1)

	// No worker running: the second event has nowhere to go and is dropped
	// instead of blocking the caller.
	s.Require().NoError(publisher.Publish(context.Background(), s.event("eerste")))
	s.Require().NoError(publisher.Publish(context.Background(), s.event("tweede")))

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = publisher.Run(ctx) }()

	s.Eventually(func() bool {
		return len(sink.Events()) == 1
	}, time.Second, 10*time.Millisecond)
	s.Equal("eerste", sink.Events()[0].Resource)
	cancel()
}

func (s *WorkerSuite) TestRunStopsOnCancel() {
	publisher := NewAsyncPublisher(NewMemoryPublisher(), s.logger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := publisher.Run(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *WorkerSuite) TestMemoryPublisherCopies() {
	sink := NewMemoryPublisher()
	s.Require().NoError(sink.Publish(context.Background(), s.event("zaak")))

	events := sink.Events()
	events[0].Resource = "gewijzigd"
	s.Equal("zaak", sink.Events()[0].Resource)
}
