package ffmpeg

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeProcess struct {
	done   chan struct{}
	once   sync.Once
	killed bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{done: make(chan struct{})}
}

func (p *fakeProcess) Wait() error {
	<-p.done
	return nil
}

func (p *fakeProcess) Kill() error {
	p.killed = true
	p.finish()
	return nil
}

// finish simulates ffplay exiting at end of stream
func (p *fakeProcess) finish() {
	p.once.Do(func() { close(p.done) })
}

type startCall struct {
	uri    string
	offset float64
}

type recordedEvents struct {
	metadata chan float64
	updates  chan float64
	ended    chan string
}

func newRecordedEvents() *recordedEvents {
	return &recordedEvents{
		metadata: make(chan float64, 8),
		updates:  make(chan float64, 64),
		ended:    make(chan string, 8),
	}
}

func (r *recordedEvents) OnMetadata(uri string, duration float64) { r.metadata <- duration }
func (r *recordedEvents) OnTimeUpdate(uri string, position float64) {
	select {
	case r.updates <- position:
	default:
	}
}
func (r *recordedEvents) OnEnded(uri string) { r.ended <- uri }

type testPlayer struct {
	*Player
	events *recordedEvents
	clock  time.Time
	starts []startCall
	procs  []*fakeProcess
}

func newTestPlayer(t *testing.T, duration float64, probeErr error, tick time.Duration) *testPlayer {
	t.Helper()
	tp := &testPlayer{events: newRecordedEvents(), clock: time.Unix(1000, 0)}
	p := New("ffprobe", "ffplay", time.Second).NewPlayer(tp.events, tick)
	p.probe = func(ctx context.Context, uri string) (float64, error) {
		return duration, probeErr
	}
	p.start = func(uri string, offset float64) (process, error) {
		proc := newFakeProcess()
		tp.starts = append(tp.starts, startCall{uri: uri, offset: offset})
		tp.procs = append(tp.procs, proc)
		return proc, nil
	}
	p.now = func() time.Time { return tp.clock }
	tp.Player = p
	t.Cleanup(func() { _ = p.Close() })
	return tp
}

func (tp *testPlayer) advance(d time.Duration) {
	tp.mu.Lock()
	tp.clock = tp.clock.Add(d)
	tp.mu.Unlock()
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for player event")
	}
	var zero T
	return zero
}

func TestPlayerLoadReportsMetadata(t *testing.T) {
	tp := newTestPlayer(t, 42.5, nil, time.Hour)

	if err := tp.Load("/audio/a.wav"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := waitFor(t, tp.events.metadata); got != 42.5 {
		t.Errorf("Expected duration 42.5, got %f", got)
	}
}

func TestPlayerLoadProbeFailure(t *testing.T) {
	tp := newTestPlayer(t, 0, errors.New("probe failed"), time.Hour)

	if err := tp.Load("/audio/a.wav"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	select {
	case d := <-tp.events.metadata:
		t.Errorf("Expected no metadata event, got %f", d)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPlayerPlayPauseTracksPosition(t *testing.T) {
	tp := newTestPlayer(t, 60, nil, time.Hour)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)

	if err := tp.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	tp.advance(5 * time.Second)
	if got := tp.Position(); got != 5 {
		t.Errorf("Expected position 5, got %f", got)
	}

	if err := tp.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if !tp.procs[0].killed {
		t.Error("Expected ffplay to be killed on pause")
	}
	tp.advance(10 * time.Second)
	if got := tp.Position(); got != 5 {
		t.Errorf("Expected paused position 5, got %f", got)
	}

	// Resume restarts ffplay at the paused offset
	_ = tp.Play()
	if len(tp.starts) != 2 || tp.starts[1].offset != 5 {
		t.Errorf("Expected resume at offset 5, got %+v", tp.starts)
	}
}

func TestPlayerSetPosition(t *testing.T) {
	tp := newTestPlayer(t, 60, nil, time.Hour)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)

	// Paused seek only moves the offset
	_ = tp.SetPosition(30)
	if len(tp.starts) != 0 {
		t.Errorf("Expected no ffplay start while paused, got %d", len(tp.starts))
	}
	if got := tp.Position(); got != 30 {
		t.Errorf("Expected position 30, got %f", got)
	}

	// Seeking while playing restarts ffplay
	_ = tp.Play()
	_ = tp.SetPosition(90)
	if len(tp.starts) != 2 {
		t.Fatalf("Expected 2 starts, got %d", len(tp.starts))
	}
	if tp.starts[1].offset != 60 {
		t.Errorf("Expected seek clamped to duration 60, got %f", tp.starts[1].offset)
	}
	if !tp.procs[0].killed {
		t.Error("Expected previous ffplay to be killed")
	}

	_ = tp.SetPosition(-4)
	if tp.starts[2].offset != 0 {
		t.Errorf("Expected negative seek clamped to 0, got %f", tp.starts[2].offset)
	}
}

func TestPlayerNaturalEnd(t *testing.T) {
	tp := newTestPlayer(t, 3, nil, time.Hour)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)
	_ = tp.Play()

	tp.procs[0].finish()
	if got := waitFor(t, tp.events.ended); got != "/audio/a.wav" {
		t.Errorf("Expected ended for /audio/a.wav, got %s", got)
	}
	if got := tp.Position(); got != 3 {
		t.Errorf("Expected position pinned to duration 3, got %f", got)
	}
}

func TestPlayerKilledProcessDoesNotEnd(t *testing.T) {
	tp := newTestPlayer(t, 3, nil, time.Hour)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)
	_ = tp.Play()
	_ = tp.Pause()

	select {
	case uri := <-tp.events.ended:
		t.Errorf("Expected no ended event after pause, got %s", uri)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPlayerLoadStopsPlayback(t *testing.T) {
	tp := newTestPlayer(t, 3, nil, time.Hour)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)
	_ = tp.Play()

	_ = tp.Load("/audio/b.wav")
	if !tp.procs[0].killed {
		t.Error("Expected ffplay to be killed on load")
	}
	if got := tp.Position(); got != 0 {
		t.Errorf("Expected position reset to 0, got %f", got)
	}
}

func TestPlayerTimeUpdates(t *testing.T) {
	tp := newTestPlayer(t, 60, nil, 5*time.Millisecond)
	_ = tp.Load("/audio/a.wav")
	waitFor(t, tp.events.metadata)
	_ = tp.Play()
	tp.advance(2 * time.Second)

	if got := waitFor(t, tp.events.updates); got < 0 || got > 60 {
		t.Errorf("Expected position within clip, got %f", got)
	}
}

func TestPlayerClosed(t *testing.T) {
	tp := newTestPlayer(t, 60, nil, time.Hour)
	_ = tp.Close()

	if err := tp.Load("/audio/a.wav"); !errors.Is(err, ErrPlayerClosed) {
		t.Errorf("Expected ErrPlayerClosed, got %v", err)
	}
	if err := tp.Play(); !errors.Is(err, ErrPlayerClosed) {
		t.Errorf("Expected ErrPlayerClosed, got %v", err)
	}
}
