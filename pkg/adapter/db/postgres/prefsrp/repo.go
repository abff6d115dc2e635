// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsrp is the adapter for the preferences repository.
// It exposes the prefsrp.Repo type in order to allow use cases to
// store and query durable single-value preferences, such as the
// notification radius and the push channel token.
package prefsrp

import (
	"context"

	"github.com/momeni/job-alerts/pkg/adapter/db/postgres"
	"github.com/momeni/job-alerts/pkg/core/repo"
)

// Repo represents the preferences repository instance.
type Repo struct {
}

// New instantiates a preferences Repo struct.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn takes a Conn interface instance, unwraps it as required,
// and returns a PreferencesConnQueryer interface which (with access to
// the implementation-dependent connection object) can run different
// permitted operations on preferences.
// The connQueryer itself is not mentioned as the return value since
// it is not exported. Otherwise, the general rule is to take
// interfaces as arguments and return exported structs.
func (prefs *Repo) Conn(c repo.Conn) repo.PreferencesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, name string) (string, bool, error) {
	return Get(ctx, cq.Conn, name)
}

func (cq connQueryer) Set(ctx context.Context, name, value string) error {
	return Set(ctx, cq.Conn, name, value)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx takes a Tx interface instance, unwraps it as required,
// and returns a PreferencesTxQueryer interface which (with access to
// the implementation-dependent transaction object) can run different
// permitted operations on preferences.
func (prefs *Repo) Tx(tx repo.Tx) repo.PreferencesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, name string) (string, bool, error) {
	return Get(ctx, tq.Tx, name)
}

func (tq txQueryer) Set(ctx context.Context, name, value string) error {
	return Set(ctx, tq.Tx, name, value)
}
