// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsrs realizes the preferences resource, allowing the
// persisted alert radius and push channel token preferences to be
// read and updated over the REST APIs.
package prefsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/job-alerts/pkg/core/usecase/prefsuc"
)

type resource struct {
	prefs *prefsuc.UseCase
}

// Register instantiates a resource adapting the preferences use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/jaweb/v1/preferences
//     in order to read the effective preferences,
//  2. PUT request to /api/jaweb/v1/preferences/radius
//     in order to replace the alert radius,
//  3. PUT request to /api/jaweb/v1/preferences/push-token
//     in order to replace the push channel token.
func Register(r *gin.RouterGroup, prefs *prefsuc.UseCase) {
	rs := &resource{prefs: prefs}
	r.GET("preferences", rs.GetPreferences)
	r.PUT("preferences/radius", rs.PutRadius)
	r.PUT("preferences/push-token", rs.PutPushToken)
}

// GetPreferences reports the effective radius, falling back to the
// default when no valid preference is stored, and whether a push
// channel token is stored. The token value itself is never echoed.
func (rs *resource) GetPreferences(c *gin.Context) {
	km, err := rs.prefs.Radius(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	_, ok, err := rs.prefs.PushToken(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"radius_km":      km,
		"push_token_set": ok,
	})
}

// PutRadius replaces the persisted alert radius.
func (rs *resource) PutRadius(c *gin.Context) {
	req := rs.DserRadiusReq(c)
	if req == nil {
		return
	}
	if err := rs.prefs.SetRadius(c, req.RadiusKm); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"radius_km": req.RadiusKm})
}

// PutPushToken replaces the persisted push channel token.
func (rs *resource) PutPushToken(c *gin.Context) {
	req := rs.DserPushTokenReq(c)
	if req == nil {
		return
	}
	if err := rs.prefs.SetPushToken(c, req.Token); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
