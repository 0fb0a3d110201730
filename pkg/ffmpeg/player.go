package ffmpeg

import (
	"context"
	"os/exec"
	"sync"
	"time"
)

// PlayerEvents receives notifications from a Player. Callbacks run on the
// player's own goroutines with no player lock held, so they may call back
// into the player.
type PlayerEvents interface {
	OnMetadata(uri string, duration float64)
	OnTimeUpdate(uri string, position float64)
	OnEnded(uri string)
}

// process is a running ffplay instance
type process interface {
	Wait() error
	Kill() error
}

type cmdProcess struct {
	cmd *exec.Cmd
}

func (p *cmdProcess) Wait() error { return p.cmd.Wait() }

func (p *cmdProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Player plays one clip at a time through ffplay. Position is tracked by
// wall clock from the offset the current ffplay run started at; seeking or
// resuming restarts ffplay at the new offset.
type Player struct {
	events PlayerEvents
	tick   time.Duration

	probe func(ctx context.Context, uri string) (float64, error)
	start func(uri string, offset float64) (process, error)
	now   func() time.Time

	mu        sync.Mutex
	uri       string
	duration  float64
	offset    float64
	startedAt time.Time
	playing   bool
	proc      process
	loadGen   int
	runGen    int
	closed    bool
}

// NewPlayer creates a player that probes clips with ffprobe and plays them
// with ffplay, reporting progress every tick
func (f *FFmpeg) NewPlayer(events PlayerEvents, tick time.Duration) *Player {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	return &Player{
		events: events,
		tick:   tick,
		probe: func(ctx context.Context, uri string) (float64, error) {
			md, err := f.GetMetadata(ctx, uri)
			if err != nil {
				return 0, err
			}
			return md.Duration, nil
		},
		start: func(uri string, offset float64) (process, error) {
			cmd := exec.Command(f.ffplayPath, playArgs(uri, offset)...)
			if err := cmd.Start(); err != nil {
				return nil, NewProcessingError("playback", uri, err, "")
			}
			return &cmdProcess{cmd: cmd}, nil
		},
		now: time.Now,
	}
}

// Load stops any current playback and points the player at uri. Duration
// is probed in the background and reported through OnMetadata.
func (p *Player) Load(uri string) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPlayerClosed
	}
	p.stopLocked()
	p.uri = uri
	p.duration = 0
	p.offset = 0
	p.loadGen++
	gen := p.loadGen
	p.mu.Unlock()

	go p.loadMetadata(uri, gen)
	return nil
}

func (p *Player) loadMetadata(uri string, gen int) {
	duration, err := p.probe(context.Background(), uri)
	if err != nil {
		// Without a duration the clip can still be played; seeking stays disabled
		return
	}

	p.mu.Lock()
	if p.closed || gen != p.loadGen {
		p.mu.Unlock()
		return
	}
	p.duration = duration
	p.mu.Unlock()

	p.events.OnMetadata(uri, duration)
}

// Play starts or resumes playback from the current position
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPlayerClosed
	}
	if p.uri == "" {
		return nil
	}
	return p.runLocked()
}

// Pause stops ffplay and remembers the position reached
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPlayerClosed
	}
	p.stopLocked()
	return nil
}

// SetPosition moves the playhead, restarting ffplay when playing
func (p *Player) SetPosition(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPlayerClosed
	}
	if seconds < 0 {
		seconds = 0
	}
	if p.duration > 0 && seconds > p.duration {
		seconds = p.duration
	}
	if !p.playing {
		p.offset = seconds
		return nil
	}
	p.stopLocked()
	p.offset = seconds
	return p.runLocked()
}

// Position returns the current playhead in seconds
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// Close stops playback; the player cannot be used afterwards
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.closed = true
	return nil
}

func (p *Player) positionLocked() float64 {
	if !p.playing {
		return p.offset
	}
	pos := p.offset + p.now().Sub(p.startedAt).Seconds()
	if p.duration > 0 && pos > p.duration {
		pos = p.duration
	}
	return pos
}

func (p *Player) runLocked() error {
	if p.playing {
		p.stopLocked()
	}
	proc, err := p.start(p.uri, p.offset)
	if err != nil {
		return err
	}
	p.proc = proc
	p.playing = true
	p.startedAt = p.now()
	p.runGen++

	go p.wait(proc, p.uri, p.runGen)
	go p.ticker(p.uri, p.runGen)
	return nil
}

// stopLocked kills the running ffplay, if any, and freezes the position
func (p *Player) stopLocked() {
	if !p.playing {
		return
	}
	p.offset = p.positionLocked()
	p.playing = false
	p.runGen++
	if p.proc != nil {
		_ = p.proc.Kill()
		p.proc = nil
	}
}

// wait reports the end of the clip when ffplay exits on its own
func (p *Player) wait(proc process, uri string, gen int) {
	_ = proc.Wait()

	p.mu.Lock()
	if gen != p.runGen || p.closed {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.proc = nil
	p.runGen++
	if p.duration > 0 {
		p.offset = p.duration
	} else {
		p.offset = p.now().Sub(p.startedAt).Seconds() + p.offset
	}
	p.mu.Unlock()

	p.events.OnEnded(uri)
}

func (p *Player) ticker(uri string, gen int) {
	t := time.NewTicker(p.tick)
	defer t.Stop()

	for range t.C {
		p.mu.Lock()
		if gen != p.runGen || p.closed {
			p.mu.Unlock()
			return
		}
		pos := p.positionLocked()
		p.mu.Unlock()

		p.events.OnTimeUpdate(uri, pos)
	}
}
