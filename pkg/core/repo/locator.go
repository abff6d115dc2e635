package repo

import (
	"context"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// Locator abstracts the device location provider.
// Implementations must request the provider permission at most once
// per process lifetime; a definitive denial is latched and reported
// as cerr.PermissionDenied by all subsequent calls without contacting
// the provider again. Transient provider failures are reported as
// cerr.Unavailable and may be retried on the next refresh.
type Locator interface {
	// Acquire queries the provider for a fresh position. No caching
	// is performed; every call reaches the provider anew.
	Acquire(ctx context.Context) (*model.Position, error)
}
