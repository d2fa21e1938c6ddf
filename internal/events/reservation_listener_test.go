package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/identity-service/internal/events"
	"github.com/EgehanKilicarslan/identity-service/internal/logger"
)

// fakeReader hands out queued messages then blocks until the context ends
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	fetchErrs []error
	committed []kafka.Message
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		r.mu.Unlock()
		return kafka.Message{}, err
	}
	if len(r.messages) > 0 {
		msg := r.messages[0]
		r.messages = r.messages[1:]
		r.mu.Unlock()
		return msg, nil
	}
	r.mu.Unlock()

	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

// syncBuffer guards log output written from the listener goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runListener(t *testing.T, listener *events.ReservationListener) (context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listener.Run(ctx)
	}()
	return cancel, done
}

func TestReservationListener_CommitsEveryMessage(t *testing.T) {
	reader := &fakeReader{
		messages: []kafka.Message{
			{Offset: 1, Value: []byte(`{"reservation_id":7,"user_id":1,"restaurant_id":3,"status":"confirmed"}`)},
			{Offset: 2, Value: []byte(`not json`)},
		},
	}
	var out syncBuffer
	log := slog.New(slog.NewTextHandler(&out, nil))

	cancel, done := runListener(t, events.NewReservationListener(reader, log))

	assert.Eventually(t, func() bool {
		return reader.committedCount() == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}

	assert.Contains(t, out.String(), "reservation_id=7")
	assert.Contains(t, out.String(), "status=confirmed")
	assert.Contains(t, out.String(), "Undecodable reservation event")
}

func TestReservationListener_RetriesFetchErrors(t *testing.T) {
	reader := &fakeReader{
		fetchErrs: []error{errors.New("broker unavailable")},
		messages:  []kafka.Message{{Offset: 1, Value: []byte(`{"reservation_id":1}`)}},
	}

	cancel, done := runListener(t, events.NewReservationListener(reader, logger.Discard()))
	defer cancel()

	// The default backoff is one second.
	assert.Eventually(t, func() bool {
		return reader.committedCount() == 1
	}, 3*time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestReservationListener_Close(t *testing.T) {
	reader := &fakeReader{}
	listener := events.NewReservationListener(reader, logger.Discard())

	require.NoError(t, listener.Close())
	assert.True(t, reader.closed)
}
