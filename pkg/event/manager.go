package event

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-workflow-view/pkg/view"
)

// ListenerID identifies an attached listener so it can be detached later.
type ListenerID uint64

type registration struct {
	id       ListenerID
	priority int
	listener Listener
}

// Option customises a Manager.
type Option func(*Manager)

// WithLogger injects a logger used for debug tracing of phase execution.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager keeps one ordered listener list per phase name. Attach and Trigger
// may be called concurrently; a trigger works on a snapshot so listeners can
// attach further listeners without deadlocking.
type Manager struct {
	mu        sync.RWMutex
	listeners map[string][]registration
	nextID    ListenerID
	logger    zerolog.Logger
}

// NewManager constructs an empty manager.
func NewManager(options ...Option) *Manager {
	m := &Manager{
		listeners: make(map[string][]registration),
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Attach binds listener to the named phase. Higher priorities fire first;
// equal priorities fire in registration order.
func (m *Manager) Attach(name string, listener Listener, priority int) ListenerID {
	if listener == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	regs := append(m.listeners[name], registration{
		id:       id,
		priority: priority,
		listener: listener,
	})
	sort.SliceStable(regs, func(i, j int) bool {
		return regs[i].priority > regs[j].priority
	})
	m.listeners[name] = regs
	return id
}

// Detach removes a listener by id. It reports whether one was found.
func (m *Manager) Detach(id ListenerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, regs := range m.listeners {
		for i, reg := range regs {
			if reg.id != id {
				continue
			}
			m.listeners[name] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// Listeners returns the listeners bound to name in firing order.
func (m *Manager) Listeners(name string) []Listener {
	regs := m.snapshot(name)
	out := make([]Listener, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.listener)
	}
	return out
}

// ClearListeners removes every listener bound to name.
func (m *Manager) ClearListeners(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, name)
}

// Count returns the total number of attached listeners.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, regs := range m.listeners {
		count += len(regs)
	}
	return count
}

// Trigger fires the named phase. The first listener error aborts the phase
// and is returned unchanged alongside the responses collected so far. ctx is
// handed to listeners as-is and never checked between them.
func (m *Manager) Trigger(ctx context.Context, name string, target any, params map[string]any) (*Responses, error) {
	if ctx == nil {
		return nil, errors.New("event: context is required")
	}

	regs := m.snapshot(name)
	evt := NewEvent(name, target, params)
	responses := &Responses{values: make([]view.Result, 0, len(regs))}

	m.logger.Debug().Str("phase", name).Int("listeners", len(regs)).Msg("trigger")

	for i, reg := range regs {
		result, err := reg.listener(ctx, evt)
		if err != nil {
			m.logger.Debug().Str("phase", name).Int("index", i).Err(err).Msg("listener failed")
			return responses, err
		}
		responses.values = append(responses.values, result)
		if evt.PropagationStopped() {
			responses.stopped = true
			m.logger.Debug().Str("phase", name).Int("index", i).Msg("propagation stopped")
			break
		}
	}
	return responses, nil
}

func (m *Manager) snapshot(name string) []registration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	regs := m.listeners[name]
	out := make([]registration, len(regs))
	copy(out, regs)
	return out
}
