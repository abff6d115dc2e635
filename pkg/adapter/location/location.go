// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package location is the adapter for the device location provider.
// It exposes the location.Provider type, realizing the repo.Locator
// interface over the provider REST API.
// The provider permission is requested at most once per process
// lifetime. A definitive denial is latched, so every later acquisition
// short-circuits to cerr.PermissionDenied without contacting the
// provider again; an external re-grant requires a process restart.
// Transient transport failures of the permission request do not latch
// anything and are reported as cerr.Unavailable, so the next refresh
// retries the grant.
package location

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// DefaultTimeout bounds each location provider request.
const DefaultTimeout = 10 * time.Second

// permission is the tri-state outcome of the one-time grant request.
type permission int

const (
	permUnknown permission = iota
	permGranted
	permDenied
)

// Provider is a location provider REST API client.
type Provider struct {
	baseURL string
	client  *http.Client

	mu   sync.Mutex
	perm permission
}

// New instantiates a location Provider for the baseURL service.
// A non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Acquire queries the provider for a fresh position. The permission is
// ensured first; each successful call reaches the provider anew and no
// position is ever cached, so staleness is bounded by the refresh
// cadence alone.
func (p *Provider) Acquire(ctx context.Context) (*model.Position, error) {
	if err := p.ensurePermission(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, p.baseURL+"/position", nil,
	)
	if err != nil {
		return nil, cerr.Unavailable(err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, cerr.Unavailable(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, cerr.Unavailable(fmt.Errorf(
			"location provider responded with %s", resp.Status,
		))
	}
	var pos struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return nil, cerr.Unavailable(
			fmt.Errorf("decoding position: %w", err),
		)
	}
	return &model.Position{
		Coordinate: model.Coordinate{
			Lat: pos.Latitude, Lon: pos.Longitude,
		},
		CapturedAt: time.Now(),
	}, nil
}

// ensurePermission requests the provider permission if its outcome is
// still unknown and latches a definitive grant or denial. The mutex
// also serializes concurrent first acquisitions, so the provider is
// never prompted twice.
func (p *Provider) ensurePermission(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.perm {
	case permGranted:
		return nil
	case permDenied:
		return cerr.PermissionDenied(
			errors.New("location permission was denied"),
		)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, p.baseURL+"/permission", nil,
	)
	if err != nil {
		return cerr.Unavailable(err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		// transient failure: leave the permission unknown
		return cerr.Unavailable(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return cerr.Unavailable(fmt.Errorf(
			"location provider responded with %s", resp.Status,
		))
	}
	var grant struct {
		Granted bool `json:"granted"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return cerr.Unavailable(
			fmt.Errorf("decoding permission grant: %w", err),
		)
	}
	if !grant.Granted {
		p.perm = permDenied
		return cerr.PermissionDenied(
			errors.New("location permission was denied"),
		)
	}
	p.perm = permGranted
	return nil
}
