// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON codec
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

// Address holds the postal address fields of a job posting as they
// are reported by the remote job directory service.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// PostingUser identifies the directory account which created a job
// posting. It is a projection of the directory's user record and only
// contains the fields which this project reads.
type PostingUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// JobPosting models a single job listing as mirrored from the remote
// job directory. Its identity is the opaque ID field. Postings are
// mutable only through the directory service itself; local instances
// are read-only mirrors which are replaced wholesale on each fetch.
// The Location pointer is nil when the directory record carries no
// coordinates, in which case the posting never matches any radius.
type JobPosting struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	EmployerName    string      `json:"employerName"`
	JobType         string      `json:"jobType"`
	Description     string      `json:"description"`
	EmployerEmail   string      `json:"employerEmail"`
	EmployerContact string      `json:"employerContact"`
	Positions       uint        `json:"numberOfPositions"`
	Location        *Coordinate `json:"-"`
	Address         Address     `json:"address"`
	CreatedBy       PostingUser `json:"createdBy"`
}

// PostingPatch carries a partial update for an existing job posting.
// Nil fields are left unchanged by the directory service.
type PostingPatch struct {
	Title           *string     `json:"title,omitempty"`
	EmployerName    *string     `json:"employerName,omitempty"`
	JobType         *string     `json:"jobType,omitempty"`
	Description     *string     `json:"description,omitempty"`
	EmployerEmail   *string     `json:"employerEmail,omitempty"`
	EmployerContact *string     `json:"employerContact,omitempty"`
	Positions       *uint       `json:"numberOfPositions,omitempty"`
	Location        *Coordinate `json:"-"`
	Address         *Address    `json:"address,omitempty"`
}
