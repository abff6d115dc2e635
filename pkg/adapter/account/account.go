// Package account is the adapter for the remote account service.
// It exposes the account.Client type, realizing the repo.Accounts
// interface: bearer credentials are resolved to user identities and
// profile updates are forwarded, both against the service REST API.
package account

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// DefaultTimeout bounds each account service request.
const DefaultTimeout = 15 * time.Second

// Client is an account service REST API client.
type Client struct {
	baseURL string
	client  *http.Client
}

// New instantiates an account Client for the baseURL service.
// A non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Resolve returns the user identity of the token bearer credential.
// A rejected credential is reported as cerr.Unauthorized.
func (a *Client) Resolve(ctx context.Context, token string) (*model.User, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, a.baseURL+"/api/auth/user", nil,
	)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return a.userResponse(req)
}

// Update forwards the account patch on behalf of the token credential
// and returns the updated identity. Server rejection messages pass
// through verbatim.
func (a *Client) Update(
	ctx context.Context, token string, p model.AccountPatch,
) (*model.User, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut,
		a.baseURL+"/api/auth/user/update", bytes.NewReader(b),
	)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return a.userResponse(req)
}

func (a *Client) userResponse(req *http.Request) (*model.User, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, cerr.Unauthorized(statusError(resp))
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, cerr.FetchFailed(statusError(resp))
	case resp.StatusCode >= http.StatusMultipleChoices:
		if msg := serverMessage(resp.Body); msg != "" {
			return nil, cerr.RejectedByServer(errors.New(msg))
		}
		return nil, cerr.RejectedByServer(statusError(resp))
	}
	var u model.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, cerr.FetchFailed(fmt.Errorf("decoding identity: %w", err))
	}
	return &u, nil
}

func serverMessage(body io.Reader) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		return ""
	}
	return e.Message
}

func statusError(resp *http.Response) error {
	return fmt.Errorf("account service responded with %s", resp.Status)
}
