package repo

import (
	"context"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// Sink abstracts the notification facility which ultimately surfaces
// an alert to the user. Schedule only enqueues the intent for delivery
// at its DeliverAt time; actual on-screen delivery timing is owned by
// the sink and is fire-and-forget from the caller perspective.
// An unavailable sink is reported as cerr.Unavailable.
type Sink interface {
	Schedule(ctx context.Context, intent model.NotificationIntent) error
}
