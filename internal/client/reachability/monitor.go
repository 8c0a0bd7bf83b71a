// Package reachability reports whether the backend is currently reachable
// and notifies subscribers on transitions. The device has no portable
// connectivity signal, so reachability is probed by pinging the backend on a
// fixed interval.
package reachability

import (
	"context"
	"sync"
	"time"

	"github.com/wayfarer-app/wayfarer/internal/logging"
)

// Prober is the minimal surface the monitor needs to probe connectivity.
// The remote HTTP client satisfies it.
type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor polls a Prober and fans out online/offline transitions to
// subscribers. Callbacks run on the monitor's goroutine and must not block.
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.Mutex
	online bool
	subs   map[int]func(online bool)
	nextID int
	stop   context.CancelFunc
	done   chan struct{}
}

// New builds a monitor that probes every interval with the given per-probe
// timeout. The initial state is offline until the first successful probe.
func New(p Prober, interval, timeout time.Duration, log logging.Logger) *Monitor {
	return &Monitor{
		prober:   p,
		interval: interval,
		timeout:  timeout,
		log:      log,
		subs:     make(map[int]func(bool)),
	}
}

// Online returns the last observed connectivity state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers cb for transition notifications and returns an
// unsubscribe function. Only state changes are delivered, not every probe.
func (m *Monitor) Subscribe(cb func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = cb
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Start launches the probe loop. It probes once immediately so callers get a
// state without waiting a full interval. Stop (or ctx cancellation) ends it.
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.stop = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)

		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.probe(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	<-done
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Ping(probeCtx)
	cancel()

	online := err == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	var cbs []func(bool)
	if changed {
		cbs = make([]func(bool), 0, len(m.subs))
		for _, cb := range m.subs {
			cbs = append(cbs, cb)
		}
	}
	m.mu.Unlock()

	if !changed {
		return
	}

	m.log.Info(ctx, "reachability changed", "online", online)
	for _, cb := range cbs {
		cb(online)
	}
}
