// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsuc contains the preferences UseCase which owns the
// durable user preferences: the notification radius and the push
// channel token. Values survive process restarts through the
// preferences repository; the sole writer of each preference is an
// explicit user action while every refresh cycle reads the radius.
package prefsuc

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/log"
	"github.com/momeni/job-alerts/pkg/core/repo"
)

// DefaultRadiusKm is the notification radius which is reported while
// no radius preference has been stored yet.
const DefaultRadiusKm = 2.0

// Preference names, as stored in the preferences repository. The
// radius name matches the key which the original mobile frontend kept
// in its device-local storage, so an imported preferences dump stays
// compatible.
const (
	radiusPrefName    = "job_radius_km"
	pushTokenPrefName = "push_channel_token"
)

// UseCase represents the preferences use case. It holds a database
// connection pool and the preferences repository instance (to be
// guided with the acquired connections).
type UseCase struct {
	pool    repo.Pool
	prefsrp repo.Preferences

	defaultRadiusKm float64
}

// New instantiates a preferences use case.
func New(p repo.Pool, prefs repo.Preferences, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, prefsrp: prefs}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.defaultRadiusKm == 0 {
		uc.defaultRadiusKm = DefaultRadiusKm
	}
	return uc, nil
}

// Radius returns the configured notification radius in kilometers.
// An absent preference yields the default radius. A stored value which
// cannot be parsed as a positive number also falls back to the default
// with a warning, instead of failing the ongoing refresh cycle.
func (prefs *UseCase) Radius(ctx context.Context) (float64, error) {
	raw, ok, err := prefs.get(ctx, radiusPrefName)
	if err != nil {
		return 0, err
	}
	if !ok {
		return prefs.defaultRadiusKm, nil
	}
	km, err := strconv.ParseFloat(raw, 64)
	if err != nil || !validRadius(km) {
		log.Warn(
			ctx, "ignoring malformed radius preference",
			slog.String("value", raw),
		)
		return prefs.defaultRadiusKm, nil
	}
	return km, nil
}

// SetRadius stores km as the new notification radius. Only positive
// finite values are acceptable; anything else is a cerr.BadRequest.
func (prefs *UseCase) SetRadius(ctx context.Context, km float64) error {
	if !validRadius(km) {
		return cerr.BadRequest(
			fmt.Errorf("radius (%v) must be a positive number", km),
		)
	}
	v := strconv.FormatFloat(km, 'f', -1, 64)
	return prefs.set(ctx, radiusPrefName, v)
}

// PushToken returns the stored push channel token, if any.
func (prefs *UseCase) PushToken(ctx context.Context) (string, bool, error) {
	return prefs.get(ctx, pushTokenPrefName)
}

// SetPushToken stores token as the new push channel token.
func (prefs *UseCase) SetPushToken(ctx context.Context, token string) error {
	if token == "" {
		return cerr.BadRequest(
			fmt.Errorf("push channel token must not be empty"),
		)
	}
	return prefs.set(ctx, pushTokenPrefName, token)
}

func validRadius(km float64) bool {
	return km > 0 && !math.IsInf(km, 1) && !math.IsNaN(km)
}

func (prefs *UseCase) get(ctx context.Context, name string) (
	value string, ok bool, err error,
) {
	err = prefs.pool.Conn(
		ctx, func(ctx context.Context, c repo.Conn) error {
			q := prefs.prefsrp.Conn(c)
			value, ok, err = q.Get(ctx, name)
			return err
		},
	)
	if err != nil {
		return "", false, err
	}
	return value, ok, nil
}

func (prefs *UseCase) set(ctx context.Context, name, value string) error {
	return prefs.pool.Conn(
		ctx, func(ctx context.Context, c repo.Conn) error {
			q := prefs.prefsrp.Conn(c)
			return q.Set(ctx, name, value)
		},
	)
}
