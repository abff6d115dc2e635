// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package account_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/pkg/adapter/account"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSuccess(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/user", r.URL.Path)
			require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Write([]byte(
				`{"user_id":"u1","username":"alice","email":"a@b.cd"}`,
			))
		},
	))
	defer srv.Close()
	a := account.New(srv.URL, time.Second)

	u, err := a.Resolve(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "a@b.cd", u.Email)
}

func TestResolveRejectedCredential(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	))
	defer srv.Close()
	a := account.New(srv.URL, time.Second)

	_, err := a.Resolve(ctx, "expired")
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 401, ce.HTTPStatusCode)
}

func TestUpdateForwardsPatchAndMessages(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/api/auth/user/update", r.URL.Path)
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var p map[string]any
			require.NoError(t, json.Unmarshal(b, &p))
			if p["username"] == "taken" {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"message":"username is taken"}`))
				return
			}
			w.Write([]byte(
				`{"user_id":"u1","username":"bob","email":"b@b.cd"}`,
			))
		},
	))
	defer srv.Close()
	a := account.New(srv.URL, time.Second)

	u, err := a.Update(ctx, "tok", model.AccountPatch{
		Username: "bob", Email: "b@b.cd",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = a.Update(ctx, "tok", model.AccountPatch{
		Username: "taken", Email: "b@b.cd",
	})
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 422, ce.HTTPStatusCode)
	assert.EqualError(
		t, ce.Err, "username is taken",
		"server message must pass through verbatim",
	)
}
