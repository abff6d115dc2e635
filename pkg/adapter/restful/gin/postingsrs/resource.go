// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postingsrs realizes the postings resource, allowing the job
// postings of the remote directory service to be listed and mutated
// over the REST APIs. All mutations are proxied; the local postings
// cache is only updated by the next refresh cycle.
package postingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/job-alerts/pkg/core/usecase/postinguc"
)

type resource struct {
	postings *postinguc.UseCase
}

// Register instantiates a resource adapting the postings use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/jaweb/v1/postings
//     in order to list all postings of the directory,
//  2. GET request to /api/jaweb/v1/postings/mine
//     in order to list the postings of the authenticated user,
//  3. POST request to /api/jaweb/v1/postings
//     in order to create a posting,
//  4. PUT request to /api/jaweb/v1/postings/:pid
//     in order to patch a posting,
//  5. DELETE request to /api/jaweb/v1/postings/:pid
//     in order to remove a posting.
func Register(r *gin.RouterGroup, postings *postinguc.UseCase) {
	rs := &resource{postings: postings}
	r.GET("postings", rs.List)
	r.GET("postings/mine", rs.ListMine)
	r.POST("postings", rs.Create)
	r.PUT("postings/:pid", rs.Update)
	r.DELETE("postings/:pid", rs.Delete)
}

// List reports all postings of the remote directory.
func (rs *resource) List(c *gin.Context) {
	ps, err := rs.postings.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serPostings(ps))
}

// ListMine reports the postings which were created by the user who is
// identified by the bearer credential of the request.
func (rs *resource) ListMine(c *gin.Context) {
	token, ok := rs.DserToken(c)
	if !ok {
		return
	}
	ps, err := rs.postings.ListMine(c, token)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serPostings(ps))
}

// Create submits a new posting to the remote directory.
func (rs *resource) Create(c *gin.Context) {
	token, ok := rs.DserToken(c)
	if !ok {
		return
	}
	p := rs.DserPostingReq(c)
	if p == nil {
		return
	}
	created, err := rs.postings.Create(c, token, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, serPosting(*created))
}

// Update patches the pid posting; absent fields are left unchanged.
func (rs *resource) Update(c *gin.Context) {
	token, ok := rs.DserToken(c)
	if !ok {
		return
	}
	patch := rs.DserPatchReq(c)
	if patch == nil {
		return
	}
	updated, err := rs.postings.Update(c, token, c.Param("pid"), *patch)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, serPosting(*updated))
}

// Delete removes the pid posting from the remote directory.
func (rs *resource) Delete(c *gin.Context) {
	token, ok := rs.DserToken(c)
	if !ok {
		return
	}
	if err := rs.postings.Delete(c, token, c.Param("pid")); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
