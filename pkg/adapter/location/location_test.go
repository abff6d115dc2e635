// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package location_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momeni/job-alerts/pkg/adapter/location"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider serves the location provider REST API, counting the
// permission prompts and reporting a fixed grant decision.
type fakeProvider struct {
	granted     bool
	permissions atomic.Int32
	positions   atomic.Int32
}

func (fp *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/permission", func(w http.ResponseWriter, r *http.Request) {
		fp.permissions.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if fp.granted {
			w.Write([]byte(`{"granted":true}`))
		} else {
			w.Write([]byte(`{"granted":false}`))
		}
	})
	mux.HandleFunc("/position", func(w http.ResponseWriter, r *http.Request) {
		fp.positions.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":43.7,"longitude":-79.4}`))
	})
	return mux
}

func TestAcquirePermissionRequestedOnce(t *testing.T) {
	ctx := context.Background()
	fp := &fakeProvider{granted: true}
	srv := httptest.NewServer(fp.handler())
	defer srv.Close()
	p := location.New(srv.URL, time.Second)

	for i := 0; i < 3; i++ {
		pos, err := p.Acquire(ctx)
		require.NoError(t, err, "acquisition %d", i)
		assert.Equal(t, 43.7, pos.Coordinate.Lat)
		assert.Equal(t, -79.4, pos.Coordinate.Lon)
		assert.WithinDuration(t, time.Now(), pos.CapturedAt, time.Minute)
	}
	assert.Equal(
		t, int32(1), fp.permissions.Load(),
		"permission must be prompted at most once per process",
	)
	assert.Equal(
		t, int32(3), fp.positions.Load(),
		"positions must never be cached",
	)
}

func TestAcquireDenialIsLatched(t *testing.T) {
	ctx := context.Background()
	fp := &fakeProvider{granted: false}
	srv := httptest.NewServer(fp.handler())
	defer srv.Close()
	p := location.New(srv.URL, time.Second)

	for i := 0; i < 3; i++ {
		_, err := p.Acquire(ctx)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce, "acquisition %d", i)
		assert.Equal(t, 403, ce.HTTPStatusCode, "acquisition %d", i)
	}
	assert.Equal(
		t, int32(1), fp.permissions.Load(),
		"a latched denial may not prompt the provider again",
	)
	assert.Zero(t, fp.positions.Load())
}

func TestAcquireTransientPermissionFailureDoesNotLatch(t *testing.T) {
	ctx := context.Background()
	fp := &fakeProvider{granted: true}
	inner := fp.handler()
	var prompts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			// the first prompt fails transiently
			if r.URL.Path == "/permission" && prompts.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			inner.ServeHTTP(w, r)
		},
	))
	defer srv.Close()
	p := location.New(srv.URL, time.Second)

	_, err := p.Acquire(ctx)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 503, ce.HTTPStatusCode)

	// the unknown permission is prompted again and succeeds this time
	_, err = p.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), prompts.Load())
	assert.Equal(t, int32(1), fp.positions.Load())
}
