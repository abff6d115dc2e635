// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/momeni/job-alerts/internal/test/dbcontainer"
	"github.com/momeni/job-alerts/pkg/adapter/config"
	"github.com/momeni/job-alerts/pkg/adapter/db/postgres"
	"github.com/momeni/job-alerts/pkg/adapter/db/postgres/prefsrp"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/routes"
	"github.com/momeni/job-alerts/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

const directoryBody = `[
  {
    "id": "j1",
    "title": "Line Cook",
    "employerName": "Cafe Aroma",
    "latitude": 43.72,
    "longitude": -79.42,
    "address": {"city": "Toronto"},
    "createdBy": {"userId": "u1", "email": "owner@example.com"}
  },
  {
    "id": "j2",
    "title": "Ranch Hand",
    "employerName": "Far Farms",
    "latitude": 51.05,
    "longitude": -114.07,
    "address": {"city": "Calgary"},
    "createdBy": {"userId": "u2", "email": "other@example.com"}
  }
]`

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine

	remotes []*httptest.Server
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(ctx, prefsrp.Schema)
			return err
		},
	)
	igts.Require().NoError(err, "failed to create preferences table")

	dirSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(directoryBody))
		},
	))
	accSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer agent-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(
				`{"user_id":"u1","username":"alice","email":"a@b.cd"}`,
			))
		},
	))
	locSrv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/permission":
				w.Write([]byte(`{"granted":true}`))
			case "/position":
				w.Write([]byte(`{"latitude":43.70,"longitude":-79.40}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		},
	))
	igts.remotes = []*httptest.Server{dirSrv, accSrv, locSrv}

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	_, err = routes.Register(igts.Gin, igts.Pool, &config.Config{
		Directory: config.Remote{BaseURL: dirSrv.URL},
		Account:   config.Remote{BaseURL: accSrv.URL},
		Location:  config.Remote{BaseURL: locSrv.URL},
		Alerts: config.Alerts{
			Token:         "agent-token",
			DispatchDelay: config.Duration(time.Millisecond),
		},
	})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) TearDownSuite() {
	for _, srv := range igts.remotes {
		srv.Close()
	}
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, "/api/jaweb/v1"+path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.Require().NoError(json.Unmarshal(b, res), "body is not json")
	}
	return w
}

func (igts *IntegrationGinTestSuite) TestA1PreferencesDefaults() {
	res := &struct {
		RadiusKm     float64 `json:"radius_km"`
		PushTokenSet bool    `json:"push_token_set"`
	}{}
	w := igts.sendReqRecvResp(http.MethodGet, "/preferences", nil, res)
	igts.Equal(200, w.Code)
	igts.Equal(2.0, res.RadiusKm, "default radius")
	igts.False(res.PushTokenSet)
}

func (igts *IntegrationGinTestSuite) TestA2PutRadius() {
	res := &struct {
		RadiusKm float64 `json:"radius_km"`
	}{}
	w := igts.sendReqRecvResp(
		http.MethodPut, "/preferences/radius",
		strings.NewReader(`{"radius_km": 5}`), res,
	)
	igts.Equal(200, w.Code)
	igts.Equal(5.0, res.RadiusKm)

	prefs := &struct {
		RadiusKm float64 `json:"radius_km"`
	}{}
	w = igts.sendReqRecvResp(http.MethodGet, "/preferences", nil, prefs)
	igts.Equal(200, w.Code)
	igts.Equal(5.0, prefs.RadiusKm, "radius must persist")
}

func (igts *IntegrationGinTestSuite) TestA3PutRadiusRejectsNonPositive() {
	w := igts.sendReqRecvResp(
		http.MethodPut, "/preferences/radius",
		strings.NewReader(`{"radius_km": -1}`), nil,
	)
	igts.Equal(400, w.Code)
}

func (igts *IntegrationGinTestSuite) TestA4PutPushToken() {
	w := igts.sendReqRecvResp(
		http.MethodPut, "/preferences/push-token",
		strings.NewReader(`{"token": "expo-token-1"}`), nil,
	)
	igts.Equal(204, w.Code)

	res := &struct {
		PushTokenSet bool `json:"push_token_set"`
	}{}
	w = igts.sendReqRecvResp(http.MethodGet, "/preferences", nil, res)
	igts.Equal(200, w.Code)
	igts.True(res.PushTokenSet)
}

func (igts *IntegrationGinTestSuite) TestB1RefreshCycle() {
	res := &struct {
		User     string  `json:"user"`
		RadiusKm float64 `json:"radius_km"`
		Matched  int     `json:"matched"`
		Notified int     `json:"notified"`
	}{}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/alerts/refresh", nil, res,
	)
	igts.Require().Equal(200, w.Code, "body: %s", w.Body.String())
	igts.Equal("alice", res.User)
	igts.Equal(5.0, res.RadiusKm, "radius stored by the earlier test")
	igts.Equal(1, res.Matched, "only the Toronto posting is in range")
	igts.Equal(1, res.Notified)

	// a second refresh matches again but must not re-notify
	w = igts.sendReqRecvResp(http.MethodPost, "/alerts/refresh", nil, res)
	igts.Require().Equal(200, w.Code)
	igts.Equal(1, res.Matched)
	igts.Zero(res.Notified)
}

func (igts *IntegrationGinTestSuite) TestB2Status() {
	res := &struct {
		State      string `json:"state"`
		LastReport *struct {
			User string `json:"user"`
		} `json:"last_report"`
	}{}
	w := igts.sendReqRecvResp(http.MethodGet, "/alerts/status", nil, res)
	igts.Equal(200, w.Code)
	igts.Equal("idle", res.State)
	if igts.NotNil(res.LastReport, "a cycle completed beforehand") {
		igts.Equal("alice", res.LastReport.User)
	}
}

func (igts *IntegrationGinTestSuite) TestC1ListPostings() {
	res := &[]struct {
		ID       string `json:"id"`
		Location *struct {
			Lat float64 `json:"latitude"`
			Lon float64 `json:"longitude"`
		} `json:"location"`
	}{}
	w := igts.sendReqRecvResp(http.MethodGet, "/postings", nil, res)
	igts.Equal(200, w.Code)
	igts.Require().Len(*res, 2)
	igts.Equal("j1", (*res)[0].ID)
	if igts.NotNil((*res)[0].Location) {
		igts.Equal(43.72, (*res)[0].Location.Lat)
	}
}

func (igts *IntegrationGinTestSuite) TestC2MutationsRequireBearer() {
	w := igts.sendReqRecvResp(
		http.MethodPost, "/postings",
		strings.NewReader(`{"title":"t","employerName":"e","jobType":"j"}`),
		nil,
	)
	igts.Equal(401, w.Code)

	w = igts.sendReqRecvResp(http.MethodDelete, "/postings/j1", nil, nil)
	igts.Equal(401, w.Code)
}
