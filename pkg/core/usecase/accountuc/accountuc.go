// Package accountuc contains the account UseCase, a thin passthrough
// over the remote account service: it resolves bearer credentials to
// user identities and forwards profile updates. Authentication and
// session management stay with the remote service.
package accountuc

import (
	"context"
	"errors"
	"net/mail"

	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/repo"
)

// UseCase represents the account use case.
type UseCase struct {
	accounts repo.Accounts
}

// New instantiates an account use case.
func New(a repo.Accounts) (*UseCase, error) {
	if a == nil {
		return nil, errors.New("nil accounts collaborator")
	}
	return &UseCase{accounts: a}, nil
}

// Whoami resolves the token credential to the user identity.
func (acc *UseCase) Whoami(ctx context.Context, token string) (*model.User, error) {
	return acc.accounts.Resolve(ctx, token)
}

// Update forwards a profile patch to the account service. An empty
// username or a malformed email is rejected locally; any remaining
// validation happens server-side and its message passes through.
func (acc *UseCase) Update(
	ctx context.Context, token string, p model.AccountPatch,
) (*model.User, error) {
	if p.Username == "" {
		return nil, cerr.BadRequest(errors.New("username must not be empty"))
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return nil, cerr.BadRequest(err)
	}
	return acc.accounts.Update(ctx, token, p)
}
