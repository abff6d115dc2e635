// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"log/slog"
	"time"
)

// Position is an immutable snapshot of the device location as reported
// by the location provider. A fresh instance is created per successful
// acquisition and is discarded at the end of the refresh cycle which
// requested it; positions are never persisted.
type Position struct {
	Coordinate Coordinate // acquired geo-location

	// CapturedAt records when the provider reported this position.
	// Staleness is bounded by the refresh cadence, not by this model.
	CapturedAt time.Time
}

// LogValue implements slog.LogValuer, so positions may be logged
// without formatting their fields at each call site.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", p.Coordinate.Lat),
		slog.Float64("lon", p.Coordinate.Lon),
		slog.Time("captured_at", p.CapturedAt),
	)
}
