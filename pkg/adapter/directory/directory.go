// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package directory is the adapter for the remote job directory
// service. It exposes the directory.Client type, realizing the
// repo.Directory interface over the directory REST API.
// Network failures and 5xx responses are categorized as
// cerr.FetchFailed, while posting mutation rejections are categorized
// as cerr.RejectedByServer carrying the server message verbatim.
package directory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/pkg/core/cerr"
	"github.com/momeni/job-alerts/pkg/core/model"
)

// DefaultTimeout bounds each directory request, so a stalled fetch
// cannot outlive the refresh cycle which issued it.
const DefaultTimeout = 15 * time.Second

// Client is a job directory REST API client.
type Client struct {
	baseURL string
	client  *http.Client
}

// New instantiates a directory Client for the baseURL service.
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

// jPosting mirrors one posting record of the directory wire format.
// Coordinates are decoded through pointers, so records without them
// can be represented with a nil location in the model.
type jPosting struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	EmployerName    string     `json:"employerName"`
	JobType         string     `json:"jobType"`
	Description     string     `json:"description"`
	EmployerEmail   string     `json:"employerEmail"`
	EmployerContact string     `json:"employerContact"`
	Positions       uint       `json:"numberOfPositions"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Address         jAddress   `json:"address"`
	CreatedBy       jCreatedBy `json:"createdBy"`
}

type jAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

type jCreatedBy struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (jp *jPosting) Model() model.JobPosting {
	p := model.JobPosting{
		ID:              jp.ID,
		Title:           jp.Title,
		EmployerName:    jp.EmployerName,
		JobType:         jp.JobType,
		Description:     jp.Description,
		EmployerEmail:   jp.EmployerEmail,
		EmployerContact: jp.EmployerContact,
		Positions:       jp.Positions,
		Address:         model.Address(jp.Address),
		CreatedBy:       model.PostingUser(jp.CreatedBy),
	}
	if jp.Latitude != nil && jp.Longitude != nil {
		p.Location = &model.Coordinate{
			Lat: *jp.Latitude, Lon: *jp.Longitude,
		}
	}
	return p
}

func fromModel(p model.JobPosting) *jPosting {
	jp := &jPosting{
		ID:              p.ID,
		Title:           p.Title,
		EmployerName:    p.EmployerName,
		JobType:         p.JobType,
		Description:     p.Description,
		EmployerEmail:   p.EmployerEmail,
		EmployerContact: p.EmployerContact,
		Positions:       p.Positions,
		Address:         jAddress(p.Address),
		CreatedBy:       jCreatedBy(p.CreatedBy),
	}
	if p.Location != nil {
		lat, lon := p.Location.Lat, p.Location.Lon
		jp.Latitude, jp.Longitude = &lat, &lon
	}
	return jp
}

// List returns the complete ordered posting set of the directory.
func (d *Client) List(ctx context.Context) ([]model.JobPosting, error) {
	return d.list(ctx, d.baseURL+"/api/jobs")
}

// ListByUser returns the ordered postings created by userID.
func (d *Client) ListByUser(
	ctx context.Context, userID string,
) ([]model.JobPosting, error) {
	u := d.baseURL + "/api/jobs?user=" + url.QueryEscape(userID)
	return d.list(ctx, u)
}

func (d *Client) list(ctx context.Context, u string) ([]model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, cerr.FetchFailed(statusError(resp))
	}
	var records []jPosting
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, cerr.FetchFailed(fmt.Errorf("decoding postings: %w", err))
	}
	postings := make([]model.JobPosting, 0, len(records))
	for i := range records {
		postings = append(postings, records[i].Model())
	}
	return postings, nil
}

// Create submits a new posting on behalf of the token credential.
func (d *Client) Create(
	ctx context.Context, token string, p model.JobPosting,
) (*model.JobPosting, error) {
	return d.mutate(
		ctx, http.MethodPost, d.baseURL+"/api/jobs", token, fromModel(p),
	)
}

// Update applies a partial update to the id posting.
func (d *Client) Update(
	ctx context.Context, token, id string, p model.PostingPatch,
) (*model.JobPosting, error) {
	body := struct {
		model.PostingPatch
		Latitude  *float64 `json:"latitude,omitempty"`
		Longitude *float64 `json:"longitude,omitempty"`
	}{PostingPatch: p}
	if p.Location != nil {
		lat, lon := p.Location.Lat, p.Location.Lon
		body.Latitude, body.Longitude = &lat, &lon
	}
	u := d.baseURL + "/api/jobs/" + url.PathEscape(id)
	return d.mutate(ctx, http.MethodPut, u, token, body)
}

// Delete removes the id posting.
func (d *Client) Delete(ctx context.Context, token, id string) error {
	u := d.baseURL + "/api/jobs/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return cerr.FetchFailed(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := d.client.Do(req)
	if err != nil {
		return cerr.FetchFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return mutationError(resp)
	}
	return nil
}

func (d *Client) mutate(
	ctx context.Context, method, u, token string, body any,
) (*model.JobPosting, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, cerr.BadRequest(err)
	}
	req, err := http.NewRequestWithContext(
		ctx, method, u, bytes.NewReader(b),
	)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, cerr.FetchFailed(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, mutationError(resp)
	}
	var jp jPosting
	if err := json.NewDecoder(resp.Body).Decode(&jp); err != nil {
		return nil, cerr.FetchFailed(fmt.Errorf("decoding posting: %w", err))
	}
	p := jp.Model()
	return &p, nil
}

// mutationError categorizes a non-2xx posting mutation response.
// Validation rejections pass the server message through verbatim.
func mutationError(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return cerr.Unauthorized(statusError(resp))
	case resp.StatusCode == http.StatusNotFound:
		return cerr.NotFound(statusError(resp))
	case resp.StatusCode < http.StatusInternalServerError:
		if msg := serverMessage(resp.Body); msg != "" {
			return cerr.RejectedByServer(errors.New(msg))
		}
		return cerr.RejectedByServer(statusError(resp))
	default:
		return cerr.FetchFailed(statusError(resp))
	}
}

// serverMessage extracts the conventional {"message": ...} field of a
// directory error response, or returns an empty string.
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
	return fmt.Errorf("directory responded with %s", resp.Status)
}
