// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package accountrs realizes the account resource, proxying identity
// resolution and profile updates to the remote account service.
package accountrs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/usecase/accountuc"
)

type resource struct {
	account *accountuc.UseCase
}

// Register instantiates a resource adapting the account use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/jaweb/v1/account
//     in order to resolve the authenticated user identity,
//  2. PUT request to /api/jaweb/v1/account
//     in order to update the profile of the authenticated user.
func Register(r *gin.RouterGroup, account *accountuc.UseCase) {
	rs := &resource{account: account}
	r.GET("account", rs.Whoami)
	r.PUT("account", rs.Update)
}

// Whoami reports the user identity of the bearer credential.
func (rs *resource) Whoami(c *gin.Context) {
	token, ok := rs.dserToken(c)
	if !ok {
		return
	}
	user, err := rs.account.Whoami(c, token)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type rawAccountPatch struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// Update forwards a profile patch to the remote account service.
func (rs *resource) Update(c *gin.Context) {
	token, ok := rs.dserToken(c)
	if !ok {
		return
	}
	req := &rawAccountPatch{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	user, err := rs.account.Update(c, token, model.AccountPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (rs *resource) dserToken(c *gin.Context) (string, bool) {
	token := serdser.BearerToken(c)
	if token == "" {
		serdser.SerErr(c, cerr.Unauthorized(
			errors.New("missing bearer credential"),
		))
		return "", false
	}
	return token, true
}
