// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postinguc contains the postings UseCase which proxies the
// posting listing and mutation operations to the remote job directory
// service. Mutations never touch the local postings cache; the cache
// only changes when the next refresh cycle fetches the directory
// again. Server-side validation rejections are surfaced verbatim.
package postinguc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/repo"
)

// UseCase represents the postings use case. It holds the directory and
// accounts collaborator interfaces.
type UseCase struct {
	directory repo.Directory
	accounts  repo.Accounts
}

// New instantiates a postings use case.
func New(d repo.Directory, a repo.Accounts) (*UseCase, error) {
	if d == nil || a == nil {
		return nil, errors.New("nil collaborator")
	}
	return &UseCase{directory: d, accounts: a}, nil
}

// List returns the complete posting set, in the directory order.
func (postings *UseCase) List(ctx context.Context) ([]model.JobPosting, error) {
	return postings.directory.List(ctx)
}

// ListMine resolves the token credential to a user identity and
// returns the postings which were created by that user.
func (postings *UseCase) ListMine(
	ctx context.Context, token string,
) ([]model.JobPosting, error) {
	user, err := postings.accounts.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return postings.directory.ListByUser(ctx, user.ID)
}

// Create submits a new posting to the directory. Coordinates, when
// present, must be in range; everything else is validated server-side.
func (postings *UseCase) Create(
	ctx context.Context, token string, p model.JobPosting,
) (*model.JobPosting, error) {
	if err := checkLocation(p.Location); err != nil {
		return nil, err
	}
	return postings.directory.Create(ctx, token, p)
}

// Update applies a partial update to the id posting.
func (postings *UseCase) Update(
	ctx context.Context, token, id string, p model.PostingPatch,
) (*model.JobPosting, error) {
	if id == "" {
		return nil, cerr.BadRequest(errors.New("missing posting id"))
	}
	if err := checkLocation(p.Location); err != nil {
		return nil, err
	}
	return postings.directory.Update(ctx, token, id, p)
}

// Delete removes the id posting from the directory.
func (postings *UseCase) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return cerr.BadRequest(errors.New("missing posting id"))
	}
	return postings.directory.Delete(ctx, token, id)
}

func checkLocation(c *model.Coordinate) error {
	if c == nil {
		return nil
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return cerr.BadRequest(fmt.Errorf(
			"coordinate (%v, %v) is out of range", c.Lat, c.Lon,
		))
	}
	return nil
}
