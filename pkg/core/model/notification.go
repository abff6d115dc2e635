// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationIntent is the transient value object which the alert
// dispatcher hands to the notification sink. It is not retained after
// a successful submission; the sink owns the actual delivery timing.
type NotificationIntent struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`

	// JobID is the payload of the intent, so the surfaced alert can
	// deep-link back to the matched posting.
	JobID string `json:"jobId"`

	// DeliverAt is the earliest moment the alert should be surfaced.
	DeliverAt time.Time `json:"deliverAt"`
}
