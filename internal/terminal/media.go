package terminal

import (
	"sync"

	"github.com/killallgit/vad-annotator/internal/playback"
)

// MediaHandler consumes media notifications
type MediaHandler interface {
	HandleMediaEvent(ev playback.MediaEvent)
}

// MediaBridge adapts player callbacks into playback media events. The
// player is built before the session that consumes its events, so the
// handler is attached afterwards; events arriving before that are dropped.
type MediaBridge struct {
	mu      sync.RWMutex
	handler MediaHandler
}

// Attach sets the consumer of media events
func (b *MediaBridge) Attach(h MediaHandler) {
	b.mu.Lock()
	b.handler = h
	b.mu.Unlock()
}

func (b *MediaBridge) emit(ev playback.MediaEvent) {
	b.mu.RLock()
	h := b.handler
	b.mu.RUnlock()
	if h != nil {
		h.HandleMediaEvent(ev)
	}
}

func (b *MediaBridge) OnMetadata(uri string, duration float64) {
	b.emit(playback.MediaEvent{Kind: playback.MetadataLoaded, URI: uri, Duration: duration})
}

func (b *MediaBridge) OnTimeUpdate(uri string, position float64) {
	b.emit(playback.MediaEvent{Kind: playback.TimeUpdate, URI: uri, Position: position})
}

func (b *MediaBridge) OnEnded(uri string) {
	b.emit(playback.MediaEvent{Kind: playback.Ended, URI: uri})
}
