// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
)

// Monitor is the connection liveness loop. Every interval it sweeps the hub:
// connections that did not answer the previous ping are closed and
// unregistered; the rest get a fresh ping and must answer with a pong before
// the next sweep.
//
// The monitor is idle until Start is called and is safe to Stop more than
// once.
type Monitor struct {
	hub *Hub

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewMonitor creates a Monitor over hub. The monitor is idle until Start is
// called.
func NewMonitor(hub *Hub, logger *logger.Logger) *Monitor {
	return &Monitor{hub: hub, logger: logger}
}

// Start stops any previously running loop, then launches a background
// goroutine that sweeps the hub every interval. If interval is zero or
// negative it defaults to 30 seconds. The goroutine exits when ctx is
// cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	m.Stop()

	m.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				m.Sweep()
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the monitor is not running.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

// Sweep performs one liveness pass over every registered connection.
func (m *Monitor) Sweep() {
	var stale, live []*Connection
	m.hub.ForEach(func(conn *Connection) {
		if !conn.Alive() {
			stale = append(stale, conn)
			return
		}
		live = append(live, conn)
	})

	for _, conn := range stale {
		m.logger.Warn().
			Str("room", conn.Room()).
			Str("username", conn.Claims().Username).
			Msg("evicting unresponsive realtime connection")
		m.hub.Unregister(conn)
		_ = conn.Close()
	}

	for _, conn := range live {
		conn.expectPong()
		if err := conn.Ping(); err != nil {
			m.logger.Err(err).Str("room", conn.Room()).Msg("heartbeat ping failed")
		}
	}
}
