// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alertuc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/repo"
)

// DefaultDispatchDelay postpones the delivery of each scheduled alert
// for a short moment, so it cannot race the refresh which is still in
// flight on the caller side.
const DefaultDispatchDelay = 2 * time.Second

// Dispatcher consumes the matcher output, suppresses postings which
// were alerted before, and schedules one notification intent per newly
// in-range posting. It is the only component which may mutate the
// notified markers of the cache or call the notification sink.
type Dispatcher struct {
	sink  repo.Sink
	delay time.Duration
	now   func() time.Time
}

// NewDispatcher instantiates a Dispatcher submitting intents to the
// given sink. A non-positive delay selects DefaultDispatchDelay.
func NewDispatcher(sink repo.Sink, delay time.Duration) *Dispatcher {
	if delay <= 0 {
		delay = DefaultDispatchDelay
	}
	return &Dispatcher{sink: sink, delay: delay, now: time.Now}
}

// Dispatch schedules a notification for every matched posting which is
// not marked notified in the cache yet, then marks it. The marker is
// only set after the sink accepted the intent; a per-posting sink
// failure leaves the marker cleared, so that posting is retried on the
// next cycle (at-least-once semantics, at most one duplicate per
// cycle). One failing posting never aborts the remainder of the batch.
// The number of successfully scheduled intents is returned.
func (d *Dispatcher) Dispatch(
	ctx context.Context, matches []model.JobPosting, cache *Cache,
) int {
	ids := make([]string, 0, len(matches))
	for _, p := range matches {
		ids = append(ids, p.ID)
	}
	notified := 0
	for _, p := range cache.UnnotifiedWithin(ids) {
		intent := model.NotificationIntent{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("New job nearby: %s", p.Title),
			Body:      intentBody(p),
			JobID:     p.ID,
			DeliverAt: d.now().Add(d.delay),
		}
		if err := d.sink.Schedule(ctx, intent); err != nil {
			log.Warn(
				ctx, "scheduling notification intent",
				log.JobID(p.ID), log.Err("error", err),
			)
			continue
		}
		cache.MarkNotified(p.ID)
		notified++
	}
	return notified
}

func intentBody(p model.JobPosting) string {
	if p.Address.City == "" {
		return p.EmployerName
	}
	return fmt.Sprintf("%s, %s", p.EmployerName, p.Address.City)
}
