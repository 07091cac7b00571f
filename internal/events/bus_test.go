package events

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishToSubscribedTopic(t *testing.T) {
	b := NewBus(nil)
	defer b.Close()

	weather, err := b.Subscribe(4, WeatherUpdated)
	require.NoError(t, err)
	all, err := b.Subscribe(4)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Publish(WeatherUpdated, "report"))
	assert.Equal(t, 1, b.Publish(AnalysisCompleted, "entry"))

	ev := <-weather.C()
	assert.Equal(t, WeatherUpdated, ev.Topic)
	assert.Equal(t, "report", ev.Payload)
	assert.False(t, ev.At.IsZero())
	assert.Empty(t, weather.C())

	assert.Equal(t, WeatherUpdated, (<-all.C()).Topic)
	assert.Equal(t, AnalysisCompleted, (<-all.C()).Topic)
}

func TestPublishNeverBlocks(t *testing.T) {
	b := NewBus(nil)
	defer b.Close()

	s, err := b.Subscribe(1, HistoryChanged)
	require.NoError(t, err)

	assert.Equal(t, 1, b.Publish(HistoryChanged, nil))
	assert.Equal(t, 0, b.Publish(HistoryChanged, nil))

	st := b.Stats()
	assert.Equal(t, uint64(2), st.Published)
	assert.Equal(t, uint64(1), st.Delivered)
	assert.Equal(t, uint64(1), st.Dropped)
	<-s.C()
}

func TestSubscriptionClose(t *testing.T) {
	b := NewBus(nil)
	defer b.Close()

	s, err := b.Subscribe(1)
	require.NoError(t, err)
	s.Close()
	s.Close()

	_, ok := <-s.C()
	assert.False(t, ok)
	assert.Equal(t, 0, b.Publish(GardenChanged, nil))
}

func TestBusClose(t *testing.T) {
	b := NewBus(nil)
	s, err := b.Subscribe(1)
	require.NoError(t, err)

	b.Close()
	_, ok := <-s.C()
	assert.False(t, ok)

	_, err = b.Subscribe(1)
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.Equal(t, 0, b.Publish(WeatherUpdated, nil))

	s.Close()
	b.Close()
}

func TestNilBusPublish(t *testing.T) {
	var b *Bus
	assert.Equal(t, 0, b.Publish(WeatherUpdated, nil))
}

func TestConsume(t *testing.T) {
	b := NewBus(nil)
	s, err := b.Subscribe(8, AnalysisCompleted)
	require.NoError(t, err)

	var (
		mu  sync.Mutex
		got []any
		wg  sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		Consume(context.Background(), s, func(ev Event) {
			mu.Lock()
			got = append(got, ev.Payload)
			mu.Unlock()
		})
	}()

	b.Publish(AnalysisCompleted, 1)
	b.Publish(AnalysisCompleted, 2)
	b.Close()
	wg.Wait()

	assert.Equal(t, []any{1, 2}, got)
}

func TestConsumeStopsOnContext(t *testing.T) {
	b := NewBus(nil)
	defer b.Close()
	s, err := b.Subscribe(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Consume(ctx, s, func(Event) {})
		close(done)
	}()
	cancel()
	<-done
}

func TestConcurrentPublish(t *testing.T) {
	b := NewBus(nil)
	s, err := b.Subscribe(1000, WeatherUpdated)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.Publish(WeatherUpdated, j)
			}
		}()
	}
	wg.Wait()
	b.Close()

	n := 0
	for range s.C() {
		n++
	}
	assert.Equal(t, 500, n)
}

// syncBuffer is a bytes.Buffer safe for the logger and the test to share.
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

func debugLogger(w *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTraceLogsEvents(t *testing.T) {
	var out syncBuffer
	b := NewBus(debugLogger(&out))

	require.NoError(t, b.Trace(context.Background()))
	assert.Equal(t, 1, b.Publish(GardenChanged, nil))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "topic=garden.changed")
	}, time.Second, 10*time.Millisecond)
	b.Close()

	assert.ErrorIs(t, b.Trace(context.Background()), ErrBusClosed)
}

func TestCloseLogsStats(t *testing.T) {
	var out syncBuffer
	b := NewBus(debugLogger(&out))
	s, err := b.Subscribe(1, HistoryChanged)
	require.NoError(t, err)

	b.Publish(HistoryChanged, nil)
	b.Publish(HistoryChanged, nil)
	b.Close()
	<-s.C()

	log := out.String()
	assert.Contains(t, log, "event bus closed")
	assert.Contains(t, log, "published=2")
	assert.Contains(t, log, "delivered=1")
	assert.Contains(t, log, "dropped=1")
}
