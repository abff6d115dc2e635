// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/job-alerts/pkg/core/model"
)

// Directory abstracts the remote job directory service. The core only
// relies on the posting fields which it reads; the wire format is an
// adapter concern.
// List and ListByUser failures are categorized as cerr.FetchFailed
// (network or 5xx) while mutation rejections are categorized as
// cerr.RejectedByServer carrying the server message verbatim.
type Directory interface {
	// List returns the complete ordered posting set.
	List(ctx context.Context) ([]model.JobPosting, error)

	// ListByUser returns the ordered postings created by userID.
	ListByUser(ctx context.Context, userID string) ([]model.JobPosting, error)

	// Create submits a new posting on behalf of the token credential
	// and returns the directory's view of the created record.
	Create(ctx context.Context, token string, p model.JobPosting) (*model.JobPosting, error)

	// Update applies a partial update to the id posting.
	Update(ctx context.Context, token, id string, p model.PostingPatch) (*model.JobPosting, error)

	// Delete removes the id posting.
	Delete(ctx context.Context, token, id string) error
}
