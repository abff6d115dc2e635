// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/job-alerts/pkg/adapter/account"
	"github.com/momeni/job-alerts/pkg/adapter/config"
	"github.com/momeni/job-alerts/pkg/adapter/db/postgres/prefsrp"
	"github.com/momeni/job-alerts/pkg/adapter/directory"
	"github.com/momeni/job-alerts/pkg/adapter/location"
	"github.com/momeni/job-alerts/pkg/adapter/notification"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/accountrs"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/alertsrs"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/postingsrs"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/prefsrs"
	"github.com/momeni/job-alerts/pkg/core/repo"
	"github.com/momeni/job-alerts/pkg/core/usecase/accountuc"
	"github.com/momeni/job-alerts/pkg/core/usecase/alertuc"
	"github.com/momeni/job-alerts/pkg/core/usecase/postinguc"
	"github.com/momeni/job-alerts/pkg/core/usecase/prefsuc"
)

// Register instantiates the relevant repositories, collaborator
// adapters, and use cases based on the c configuration settings. The p
// connections pool is passed to the preferences use case, so it may
// acquire/release connections on demand; those connections are handed
// to the prefsrp repository in order to run the preferences queries.
// Register instantiates a series of "resource" structs, from packages
// which are named like alertsrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// The alerts use case is returned too, so the caller can hand it to
// the periodic refresh scheduler.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, c *config.Config) (
	*alertuc.UseCase, error,
) {
	prefsRepo := prefsrp.New()
	var prefsOpts []prefsuc.Option
	if c.Alerts.DefaultRadiusKm != 0 {
		prefsOpts = append(
			prefsOpts, prefsuc.WithDefaultRadius(c.Alerts.DefaultRadiusKm),
		)
	}
	prefsUseCase, err := prefsuc.New(p, prefsRepo, prefsOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating preferences use case: %w", err)
	}

	dirClient := directory.New(c.Directory.BaseURL, c.Directory.Timeout.Std())
	accClient := account.New(c.Account.BaseURL, c.Account.Timeout.Std())
	locProvider := location.New(c.Location.BaseURL, c.Location.Timeout.Std())
	sink := notification.NewSink()
	if c.Notification.WebhookURL != "" {
		notification.Register(notification.NewWebhookHandler(
			c.Notification.WebhookURL,
			prefsUseCase,
			c.Notification.Timeout.Std(),
		))
	}

	var alertsOpts []alertuc.Option
	if d := c.Alerts.RefreshTimeout.Std(); d != 0 {
		alertsOpts = append(alertsOpts, alertuc.WithRefreshTimeout(d))
	}
	if d := c.Alerts.DispatchDelay.Std(); d != 0 {
		alertsOpts = append(alertsOpts, alertuc.WithDispatchDelay(d))
	}
	alertsUseCase, err := alertuc.New(
		locProvider, accClient, dirClient, prefsUseCase, sink,
		alertsOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("creating alerts use case: %w", err)
	}
	postingsUseCase, err := postinguc.New(dirClient, accClient)
	if err != nil {
		return nil, fmt.Errorf("creating postings use case: %w", err)
	}
	accountUseCase, err := accountuc.New(accClient)
	if err != nil {
		return nil, fmt.Errorf("creating account use case: %w", err)
	}

	r := e.Group("/api/jaweb/v1")
	alertsrs.Register(r, alertsUseCase, c.Alerts.Token)
	prefsrs.Register(r, prefsUseCase)
	postingsrs.Register(r, postingsUseCase)
	accountrs.Register(r, accountUseCase)
	return alertsUseCase, nil
}
