// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// PreferencesQueryer supports the durable small-value storage
// operations. Each preference is a single named value; readers always
// observe either the old or the fully written new value of a name.
type PreferencesQueryer interface {
	// Get reads the value of the named preference. The second return
	// value reports whether the name was present at all.
	Get(ctx context.Context, name string) (string, bool, error)

	// Set writes value as the new content of the named preference,
	// creating it if absent.
	Set(ctx context.Context, name, value string) error
}

// PreferencesConnQueryer specifies the preferences operations which
// may run on a single connection.
type PreferencesConnQueryer interface {
	PreferencesQueryer
}

// PreferencesTxQueryer specifies the preferences operations which may
// run in an ongoing transaction.
type PreferencesTxQueryer interface {
	PreferencesQueryer
}

// Preferences is the preferences repository interface, guiding a Conn
// or Tx object for execution of the preference queries.
type Preferences interface {
	Conn(Conn) PreferencesConnQueryer
	Tx(Tx) PreferencesTxQueryer
}
