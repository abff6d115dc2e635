// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package alertuc contains the proximity alerts UseCase which owns one
// refresh cycle: acquire the device position, fetch the remote posting
// set into the local cache, match postings against the configured
// radius, and dispatch deduplicated notifications for the newly
// in-range postings.
// Cycles are serialized; a trigger arriving while a cycle is in flight
// is dropped with ErrBusy instead of being queued.
package alertuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/repo"
	"github.com/momeni/job-alerts/pkg/core/usecase/prefsuc"
)

// State enumerates the phases of the refresh coordinator.
type State string

// Refresh coordinator states. Every cycle walks from StateIdle through
// the intermediate states back to StateIdle; StateFailed is recorded
// per-cycle and also returns to StateIdle, hence the coordinator can
// never become permanently stuck.
const (
	StateIdle        State = "idle"
	StateAcquiring   State = "acquiring"
	StateFetching    State = "fetching"
	StateMatching    State = "matching"
	StateDispatching State = "dispatching"
	StateFailed      State = "failed"
)

// ErrBusy is returned by TriggerRefresh when another cycle is already
// in flight. The request is dropped, not queued, and the in-flight
// cycle keeps running unaffected.
var ErrBusy = cerr.Conflict(
	errors.New("a refresh cycle is already in flight"),
)

// DefaultRefreshTimeout bounds one whole refresh cycle, so a stalled
// collaborator cannot wedge the coordinator while further triggers are
// being dropped.
const DefaultRefreshTimeout = 15 * time.Second

// Report summarizes one successfully completed refresh cycle.
type Report struct {
	User        string         `json:"user"`
	Position    model.Position `json:"position"`
	RadiusKm    float64        `json:"radius_km"`
	Matched     int            `json:"matched"`
	Notified    int            `json:"notified"`
	CompletedAt time.Time      `json:"completed_at"`
}

// UseCase represents the proximity alerts use case. It holds the
// remote collaborator interfaces, the radius preference use case, the
// postings cache, and the alert dispatcher, and serializes refresh
// cycles over them.
type UseCase struct {
	locator   repo.Locator
	accounts  repo.Accounts
	directory repo.Directory
	prefs     *prefsuc.UseCase

	cache      *Cache
	dispatcher *Dispatcher

	timeout time.Duration
	delay   time.Duration

	// mu guards the state and the last cycle outcome. The state also
	// realizes the re-entrancy guard: only a transition out of
	// StateIdle may start a cycle.
	mu         sync.Mutex
	state      State
	lastReport *Report
	lastErr    error
}

// New instantiates a proximity alerts use case.
// Required collaborators are passed individually, so the caller has to
// provision them and whenever they change, the caller will notice and
// fix them due to a compilation error. Optional parameters are passed
// as a series of functional options.
func New(
	locator repo.Locator,
	accounts repo.Accounts,
	directory repo.Directory,
	prefs *prefsuc.UseCase,
	sink repo.Sink,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		locator:   locator,
		accounts:  accounts,
		directory: directory,
		prefs:     prefs,
		cache:     NewCache(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.timeout == 0 {
		uc.timeout = DefaultRefreshTimeout
	}
	if uc.delay == 0 {
		uc.delay = DefaultDispatchDelay
	}
	uc.dispatcher = NewDispatcher(sink, uc.delay)
	return uc, nil
}

// TriggerRefresh runs one refresh cycle using the token bearer
// credential for the user identity resolution. All external triggers,
// whether a frontend action or the periodic scheduler, funnel through
// this single entry point.
// If another cycle is in flight, ErrBusy is returned immediately and
// nothing else happens. The cycle is bounded by the configured refresh
// timeout; a deadline expiry is reported as a cerr.Timeout error.
// On success, the returned report is also retained for Status.
func (uc *UseCase) TriggerRefresh(
	ctx context.Context, token string,
) (*Report, error) {
	uc.mu.Lock()
	if uc.state != StateIdle {
		uc.mu.Unlock()
		return nil, ErrBusy
	}
	uc.state = StateAcquiring
	uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	report, err := uc.cycle(ctx, token)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.state = StateFailed
		uc.lastErr = err
		log.Warn(ctx, "refresh cycle failed", log.Err("error", err))
	} else {
		uc.lastReport = report
		uc.lastErr = nil
	}
	// StateFailed is terminal per-cycle only; the coordinator always
	// returns to StateIdle, so the next trigger can run.
	uc.state = StateIdle
	return report, err
}

// cycle walks one refresh through the acquiring, fetching, matching,
// and dispatching states. The caller already moved the state to
// StateAcquiring and takes it back to StateIdle afterwards.
func (uc *UseCase) cycle(
	ctx context.Context, token string,
) (*Report, error) {
	pos, err := uc.locator.Acquire(ctx)
	if err != nil {
		return nil, categorize(ctx, err)
	}

	uc.setState(StateFetching)
	user, err := uc.accounts.Resolve(ctx, token)
	if err != nil {
		return nil, categorize(ctx, err)
	}
	postings, err := uc.directory.List(ctx)
	if err != nil {
		return nil, categorize(ctx, err)
	}
	uc.cache.Replace(postings)

	uc.setState(StateMatching)
	radius, err := uc.prefs.Radius(ctx)
	if err != nil {
		return nil, categorize(ctx, err)
	}
	matches := Match(*pos, radius, uc.cache.Postings())

	uc.setState(StateDispatching)
	notified := uc.dispatcher.Dispatch(ctx, matches, uc.cache)

	log.Info(
		ctx, "refresh cycle completed",
		slog.String("user", user.Username),
		slog.Float64("radius_km", radius),
		slog.Int("matched", len(matches)),
		slog.Int("notified", notified),
	)
	return &Report{
		User:        user.Username,
		Position:    *pos,
		RadiusKm:    radius,
		Matched:     len(matches),
		Notified:    notified,
		CompletedAt: time.Now(),
	}, nil
}

// categorize converts a deadline expiry of the cycle context into a
// cerr.Timeout error; other errors pass through with their original
// category.
func categorize(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return cerr.Timeout(err)
	}
	return err
}

func (uc *UseCase) setState(s State) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state = s
}

// State returns the current coordinator state.
func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// Status reports the current state in addition to the last completed
// cycle report (which may be nil) and the last cycle failure (which is
// nil after a successful cycle).
func (uc *UseCase) Status() (State, *Report, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state, uc.lastReport, uc.lastErr
}

// Cache exposes the postings cache, so supporting surfaces (e.g., the
// nearby postings listing) can read the last fetched snapshot.
func (uc *UseCase) Cache() *Cache {
	return uc.cache
}
