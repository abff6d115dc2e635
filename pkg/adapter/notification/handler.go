// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notification is the adapter for the notification sink.
// It exposes the notification.Sink type, realizing the repo.Sink
// interface: accepted intents are armed on a timer and, once their
// delivery moment arrives, handed to the process-wide delivery
// handler.
// The delivery handler is process-wide state with an explicit,
// idempotent registration: the first Register call at startup wins and
// later calls are ignored, so a re-initialization of the application
// cannot swap the handler mid-delivery. There is no teardown beyond
// process exit. While no handler is registered, delivered intents are
// logged and dropped.
package notification

import (
	"context"
	"sync"

	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// Handler consumes an intent at its delivery moment and surfaces it to
// the user by whatever channel it implements.
type Handler interface {
	Deliver(ctx context.Context, intent model.NotificationIntent) error
}

var (
	handlerMu sync.Mutex
	handler   Handler
)

// Register installs h as the process-wide delivery handler. Only the
// first registration takes effect; re-registration attempts are
// ignored and reported by the false return value.
func Register(h Handler) bool {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if handler != nil {
		return false
	}
	handler = h
	return true
}

// deliver hands the intent to the registered handler, or logs and
// drops it when no handler was registered.
func deliver(ctx context.Context, intent model.NotificationIntent) error {
	handlerMu.Lock()
	h := handler
	handlerMu.Unlock()
	if h == nil {
		log.Warn(
			ctx, "no delivery handler is registered; dropping intent",
			log.JobID(intent.JobID),
		)
		return nil
	}
	return h.Deliver(ctx, intent)
}
