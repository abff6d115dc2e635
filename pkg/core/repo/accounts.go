package repo

import (
	"context"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// Accounts abstracts the remote account service which resolves a
// bearer credential to a user identity. A rejected credential is
// categorized as cerr.Unauthorized.
type Accounts interface {
	Resolve(ctx context.Context, token string) (*model.User, error)

	// Update applies the given account patch on behalf of the token
	// credential and returns the updated identity. Server rejection
	// messages are passed through verbatim.
	Update(ctx context.Context, token string, p model.AccountPatch) (*model.User, error)
}
