// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// Sink schedules accepted intents for delivery at their DeliverAt
// moment. Scheduling is fire-and-forget from the caller perspective:
// a nil Schedule error only acknowledges that the intent was armed,
// while the delivery outcome is observed by the delivery handler
// alone.
type Sink struct {
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

// NewSink instantiates an open notification Sink.
func NewSink() *Sink {
	return &Sink{
		timers: make(map[*time.Timer]struct{}),
	}
}

// Schedule arms a timer delivering the intent at its DeliverAt time.
// An intent without a job ID is rejected as cerr.BadRequest and a
// closed sink rejects everything as cerr.Unavailable. A DeliverAt in
// the past fires immediately.
func (s *Sink) Schedule(
	ctx context.Context, intent model.NotificationIntent,
) error {
	if intent.JobID == "" {
		return cerr.BadRequest(errors.New("intent without a job ID"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return cerr.Unavailable(errors.New("notification sink is closed"))
	}
	var t *time.Timer
	t = time.AfterFunc(time.Until(intent.DeliverAt), func() {
		s.mu.Lock()
		delete(s.timers, t)
		s.mu.Unlock()
		// The cycle context is gone by now; delivery runs on its own.
		dctx := context.Background()
		if err := deliver(dctx, intent); err != nil {
			log.Warn(
				dctx, "delivering notification",
				log.JobID(intent.JobID), log.Err("error", err),
			)
		}
	})
	s.timers[t] = struct{}{}
	return nil
}

// Close stops all armed timers and rejects further scheduling. Intents
// which were armed but not delivered yet are dropped.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}
