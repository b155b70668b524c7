// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package agent

import (
	"context"
	"sync"
	"time"

	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/models"
)

// Pusher submits queued operations to the central server.
type Pusher interface {
	Push(ctx context.Context, items []models.SyncItem) ([]models.SyncOutcome, error)
}

// Syncer periodically drains the offline queue to the central server.
//
// Delivery semantics are at-least-once: items are removed only after the
// server has answered. A transport failure keeps the whole batch queued for
// the next cycle. Both "synced" and "failed" outcomes count as
// acknowledgements: a "failed" outcome means the server saw the item and
// rejected it, and replaying it would fail again.
type Syncer struct {
	queue  *Queue
	pusher Pusher

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncer creates a Syncer over the given queue and pusher. The syncer is
// idle until Start is called.
func NewSyncer(queue *Queue, pusher Pusher, logger *logger.Logger) *Syncer {
	return &Syncer{queue: queue, pusher: pusher, logger: logger}
}

// Start stops any previously running job, then launches a background
// goroutine that drains the queue every interval. If interval is zero or
// negative it defaults to one minute. The goroutine exits when ctx is
// cancelled or Stop is called.
func (s *Syncer) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := s.Drain(jobCtx); err != nil {
					s.logger.Err(err).Msg("queue drain failed, keeping items for next cycle")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (s *Syncer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// Drain performs one push cycle: read the queue, submit it, remove what the
// server acknowledged.
func (s *Syncer) Drain(ctx context.Context) error {
	items, err := s.queue.Pending(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	outcomes, err := s.pusher.Push(ctx, items)
	if err != nil {
		// transport failure: every item stays queued
		return err
	}

	acked := make(map[string]struct{}, len(outcomes))
	var failed int
	for _, outcome := range outcomes {
		acked[outcome.ID] = struct{}{}
		if outcome.Status == models.SyncStatusFailed {
			failed++
		}
	}

	remove := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := acked[item.ID]; ok {
			remove = append(remove, item.ID)
			continue
		}

		// The server answered but produced no outcome for this item: its
		// type is not recognized and never will be. Keeping it would jam
		// the queue forever.
		s.logger.Warn().
			Str("item_id", item.ID).
			Str("item_type", item.Type).
			Msg("dropping queue item the server did not acknowledge")
		remove = append(remove, item.ID)
	}

	if err := s.queue.Remove(ctx, remove); err != nil {
		return err
	}

	s.logger.Info().
		Int("pushed", len(items)).
		Int("synced", len(outcomes)-failed).
		Int("failed", failed).
		Msg("queue drained")

	return nil
}
