// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notification

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/pkg/core/model"
	"github.com/momeni/job-alerts/pkg/core/usecase/prefsuc"
)

// WebhookHandler delivers intents by POSTing their JSON encoding to a
// push gateway URL. When a push channel token preference is stored, it
// is attached as the bearer credential of the request, so the gateway
// can route the alert to the right device.
type WebhookHandler struct {
	url    string
	prefs  *prefsuc.UseCase
	client *http.Client
}

// NewWebhookHandler instantiates a WebhookHandler for the url gateway.
func NewWebhookHandler(
	url string, prefs *prefsuc.UseCase, timeout time.Duration,
) *WebhookHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookHandler{
		url:    url,
		prefs:  prefs,
		client: &http.Client{Timeout: timeout},
	}
}

// Deliver posts the intent to the push gateway.
func (wh *WebhookHandler) Deliver(
	ctx context.Context, intent model.NotificationIntent,
) error {
	b, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("encoding intent: %w", err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, wh.url, bytes.NewReader(b),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	token, ok, err := wh.prefs.PushToken(ctx)
	if err != nil {
		return fmt.Errorf("reading push channel token: %w", err)
	}
	if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := wh.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push gateway responded with %s", resp.Status)
	}
	return nil
}
