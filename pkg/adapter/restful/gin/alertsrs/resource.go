// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package alertsrs realizes the alerts resource, allowing the refresh
// cycle of the proximity alerts engine to be triggered and observed
// over the REST APIs.
package alertsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/job-alerts/pkg/core/usecase/alertuc"
)

type resource struct {
	alerts *alertuc.UseCase

	// fallbackToken authenticates triggers which carry no bearer
	// credential of their own, such as operator curl invocations.
	fallbackToken string
}

// Register instantiates a resource adapting the alerts use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/jaweb/v1/alerts/refresh
//     in order to run one complete refresh cycle synchronously,
//  2. GET request to /api/jaweb/v1/alerts/status
//     in order to observe the coordinator state and last outcome.
func Register(
	r *gin.RouterGroup, alerts *alertuc.UseCase, fallbackToken string,
) {
	rs := &resource{alerts: alerts, fallbackToken: fallbackToken}
	r.POST("alerts/refresh", rs.Refresh)
	r.GET("alerts/status", rs.Status)
}

// Refresh runs one refresh cycle and reports its outcome. A trigger
// which arrives while another cycle is in flight is rejected with a
// 409 status code instead of being queued.
func (rs *resource) Refresh(c *gin.Context) {
	token := serdser.BearerToken(c)
	if token == "" {
		token = rs.fallbackToken
	}
	rep, err := rs.alerts.TriggerRefresh(c, token)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Status reports the coordinator state, the report of the last
// completed cycle (if any), and the failure of the last failed cycle
// (if any).
func (rs *resource) Status(c *gin.Context) {
	state, rep, lastErr := rs.alerts.Status()
	resp := gin.H{"state": state}
	if rep != nil {
		resp["last_report"] = rep
	}
	if lastErr != nil {
		resp["last_failure"] = lastErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}
