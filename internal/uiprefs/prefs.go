// Package uiprefs holds presentation preferences shared by every screen of
// the client: dark mode, focus mode and the theme change animation.
package uiprefs

import (
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/quietpage/quietpage/internal/domain"
)

// KeyDarkMode is the local store key of the dark mode flag.
const KeyDarkMode = "darkMode"

// Theme animation timings.
const (
	ThemeFlipDelay  = 1500 * time.Millisecond
	ThemeClearDelay = 3000 * time.Millisecond
)

// Animation is the theme transition being played.
type Animation string

const (
	AnimationNone    Animation = ""
	AnimationSunset  Animation = "sunset"
	AnimationSunrise Animation = "sunrise"
)

type kvStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Snapshot is the observable state.
type Snapshot struct {
	DarkMode  bool
	FocusMode bool
	Animation Animation
}

// Prefs is an explicitly injected preference state.
type Prefs struct {
	log   *slog.Logger
	kv    kvStore
	clock clockwork.Clock

	mu        sync.Mutex
	state     Snapshot
	listeners []func(Snapshot)
}

// New hydrates the dark mode flag from kv. Focus mode always starts off.
func New(logger *slog.Logger, kv kvStore, clock clockwork.Clock) *Prefs {
	p := &Prefs{
		log:   logger.With("component", "uiprefs"),
		kv:    kv,
		clock: clock,
	}

	raw, err := kv.Get(KeyDarkMode)
	switch {
	case err == nil:
		p.state.DarkMode, _ = strconv.ParseBool(string(raw))
	case !errors.Is(err, domain.ErrNotFound):
		p.log.Warn("read dark mode", slog.String("error", err.Error()))
	}
	return p
}

func (p *Prefs) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.DarkMode
}

func (p *Prefs) FocusMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.FocusMode
}

func (p *Prefs) Animation() Animation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Animation
}

// Snapshot returns the whole state at once.
func (p *Prefs) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// OnChange registers fn to run after every change.
func (p *Prefs) OnChange(fn func(Snapshot)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// SetDarkMode sets the flag immediately and writes it through.
func (p *Prefs) SetDarkMode(on bool) {
	p.update(func(s *Snapshot) bool {
		if s.DarkMode == on {
			return false
		}
		s.DarkMode = on
		return true
	})
}

func (p *Prefs) SetFocusMode(on bool) {
	p.update(func(s *Snapshot) bool {
		if s.FocusMode == on {
			return false
		}
		s.FocusMode = on
		return true
	})
}

func (p *Prefs) ToggleFocusMode() {
	p.update(func(s *Snapshot) bool {
		s.FocusMode = !s.FocusMode
		return true
	})
}

// ToggleDarkMode plays the theme animation. The flag flips ThemeFlipDelay
// after the call and the animation ends ThemeClearDelay after it. Toggles
// while an animation runs are ignored; the return value reports whether
// this one started.
func (p *Prefs) ToggleDarkMode() bool {
	var goingDark bool
	started := p.update(func(s *Snapshot) bool {
		if s.Animation != AnimationNone {
			return false
		}
		goingDark = !s.DarkMode
		s.Animation = AnimationSunrise
		if goingDark {
			s.Animation = AnimationSunset
		}
		return true
	})
	if !started {
		return false
	}

	p.clock.AfterFunc(ThemeFlipDelay, func() { p.SetDarkMode(goingDark) })
	p.clock.AfterFunc(ThemeClearDelay, func() {
		p.update(func(s *Snapshot) bool {
			s.Animation = AnimationNone
			return true
		})
	})
	return true
}

// update applies fn under the lock. When fn reports a change, dark mode is
// persisted if it moved and listeners are notified.
func (p *Prefs) update(fn func(s *Snapshot) bool) bool {
	p.mu.Lock()
	before := p.state
	if !fn(&p.state) {
		p.mu.Unlock()
		return false
	}
	after := p.state
	ls := append([]func(Snapshot){}, p.listeners...)
	p.mu.Unlock()

	if before.DarkMode != after.DarkMode {
		if err := p.kv.Set(KeyDarkMode, []byte(strconv.FormatBool(after.DarkMode))); err != nil {
			p.log.Warn("persist dark mode", slog.String("error", err.Error()))
		}
	}
	for _, l := range ls {
		l(after)
	}
	return true
}
