package reachability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wayfarer-app/wayfarer/internal/logging"
)

type fakeProber struct {
	mu  sync.Mutex
	err error
}

func (p *fakeProber) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakeProber) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func newMonitor(p Prober) *Monitor {
	return New(p, 10*time.Millisecond, 10*time.Millisecond, logging.Setup("error"))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMonitor_StartsOfflineThenFlipsOnline(t *testing.T) {
	p := &fakeProber{err: errors.New("down")}
	m := newMonitor(p)
	require.False(t, m.Online())

	m.Start(context.Background())
	t.Cleanup(m.Stop)

	// stays offline while pings fail
	time.Sleep(30 * time.Millisecond)
	assert.False(t, m.Online())

	p.set(nil)
	waitFor(t, m.Online)
}

func TestMonitor_NotifiesOnlyOnTransition(t *testing.T) {
	p := &fakeProber{}
	m := newMonitor(p)

	var mu sync.Mutex
	var events []bool
	unsub := m.Subscribe(func(online bool) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, online)
	})
	t.Cleanup(unsub)

	m.Start(context.Background())
	t.Cleanup(m.Stop)

	waitFor(t, m.Online)

	// several successful probes later, still a single event
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	require.Equal(t, []bool{true}, events)
	mu.Unlock()

	p.set(errors.New("down"))
	waitFor(t, func() bool { return !m.Online() })

	mu.Lock()
	assert.Equal(t, []bool{true, false}, events)
	mu.Unlock()
}

func TestMonitor_Unsubscribe(t *testing.T) {
	p := &fakeProber{err: errors.New("down")}
	m := newMonitor(p)

	var mu sync.Mutex
	called := false
	unsub := m.Subscribe(func(bool) {
		mu.Lock()
		defer mu.Unlock()
		called = true
	})
	unsub()

	m.Start(context.Background())
	t.Cleanup(m.Stop)

	p.set(nil)
	waitFor(t, m.Online)

	mu.Lock()
	assert.False(t, called)
	mu.Unlock()
}

func TestMonitor_StopWithoutStart(t *testing.T) {
	m := newMonitor(&fakeProber{})
	m.Stop() // must not panic
}
