// Package notify_test provides a recording Sender for handler tests.
// Related: internal/notify/sender.go, internal/notify/handler.go
// Tags: notify, fakes, testing
package notify

import (
	"errors"
	"sync"
)

var (
	errVisual = errors.New("notify-send exited with status 1")
	errSound  = errors.New("paplay: no such sink")
)

// recordingSender records what the handler asked it to send. The handler
// calls it from a dispatch goroutine, so reads go through the accessors.
type recordingSender struct {
	mu        sync.Mutex
	visualErr error
	soundErr  error
	visuals   []Notification
	sounds    []string
}

func (r *recordingSender) SendVisual(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visuals = append(r.visuals, n)
	return r.visualErr
}

func (r *recordingSender) SendSound(soundFile string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sounds = append(r.sounds, soundFile)
	return r.soundErr
}

func (r *recordingSender) VisualAvailable() bool { return true }
func (r *recordingSender) SoundAvailable() bool  { return true }

func (r *recordingSender) sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.visuals...)
}

func (r *recordingSender) played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sounds...)
}

// last returns the most recent visual notification, or the zero value.
func (r *recordingSender) last() Notification {
	sent := r.sent()
	if len(sent) == 0 {
		return Notification{}
	}
	return sent[len(sent)-1]
}
