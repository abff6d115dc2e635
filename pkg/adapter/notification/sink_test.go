// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/job-alerts/pkg/adapter/notification"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanHandler forwards delivered intents to a channel, so tests can
// await them. The delivery handler registry is process-wide and
// first-wins, hence one shared handler serves all tests of this
// package.
type chanHandler struct {
	delivered chan model.NotificationIntent
}

func (ch *chanHandler) Deliver(
	_ context.Context, intent model.NotificationIntent,
) error {
	ch.delivered <- intent
	return nil
}

var testHandler = &chanHandler{
	delivered: make(chan model.NotificationIntent, 16),
}

func init() {
	if !notification.Register(testHandler) {
		panic("another delivery handler was registered first")
	}
}

func intent(jobID string, deliverAt time.Time) model.NotificationIntent {
	return model.NotificationIntent{
		ID:        uuid.New(),
		Title:     "New job nearby: " + jobID,
		JobID:     jobID,
		DeliverAt: deliverAt,
	}
}

func awaitDelivery(t *testing.T) model.NotificationIntent {
	t.Helper()
	select {
	case in := <-testHandler.delivered:
		return in
	case <-time.After(5 * time.Second):
		t.Fatal("no intent was delivered in time")
		return model.NotificationIntent{}
	}
}

func TestRegisterFirstWins(t *testing.T) {
	ok := notification.Register(&chanHandler{
		delivered: make(chan model.NotificationIntent, 1),
	})
	assert.False(t, ok, "re-registration must be ignored")
}

func TestScheduleDeliversAtDeliverAt(t *testing.T) {
	ctx := context.Background()
	s := notification.NewSink()
	defer s.Close()

	deliverAt := time.Now().Add(50 * time.Millisecond)
	require.NoError(t, s.Schedule(ctx, intent("j1", deliverAt)))

	in := awaitDelivery(t)
	assert.Equal(t, "j1", in.JobID)
	assert.False(
		t, time.Now().Before(deliverAt),
		"delivery may not happen before DeliverAt",
	)
}

func TestSchedulePastDeliverAtFiresImmediately(t *testing.T) {
	ctx := context.Background()
	s := notification.NewSink()
	defer s.Close()

	require.NoError(
		t, s.Schedule(ctx, intent("j2", time.Now().Add(-time.Minute))),
	)
	in := awaitDelivery(t)
	assert.Equal(t, "j2", in.JobID)
}

func TestScheduleRejectsIntentWithoutJobID(t *testing.T) {
	ctx := context.Background()
	s := notification.NewSink()
	defer s.Close()

	err := s.Schedule(ctx, intent("", time.Now()))
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 400, ce.HTTPStatusCode)
}

func TestCloseStopsPendingTimersAndRejectsScheduling(t *testing.T) {
	ctx := context.Background()
	s := notification.NewSink()

	require.NoError(
		t, s.Schedule(ctx, intent("j3", time.Now().Add(time.Hour))),
	)
	s.Close()

	err := s.Schedule(ctx, intent("j4", time.Now()))
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 503, ce.HTTPStatusCode)

	select {
	case in := <-testHandler.delivered:
		t.Fatalf("intent %q leaked after Close", in.JobID)
	case <-time.After(100 * time.Millisecond):
	}
}
