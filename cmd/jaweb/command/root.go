// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the job
// alerts web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions.
//
//	./jaweb [-c /path/of/main/config.yaml]     # start web server
//	./jaweb db init [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/job-alerts/pkg/adapter/config"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin"
	"github.com/momeni/job-alerts/pkg/adapter/restful/gin/routes"
	"github.com/momeni/job-alerts/pkg/adapter/scheduler"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "jaweb",
	Short: "A proximity job alerts web service",
	Long: `A proximity job alerts web service which mirrors the job
postings of a remote directory service, tracks the device position
through a location provider service, and raises a deduplicated local
notification for each posting which falls within the configured alert
radius of the current position.
Refresh cycles are triggered explicitly, by a REST API call or by the
optional periodic scheduler, and walk a fixed pipeline: acquire the
position, fetch the postings, match them against the radius, and
dispatch notifications for the not yet notified matches. A trigger
which lands while a cycle is in flight is dropped, never queued.
The alert radius and the push channel token are persisted in a
PostgreSQL preferences table, so they survive process restarts, while
the postings cache and the notified flags are in-memory only and reset
on each restart.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	alerts, err := routes.Register(e, p, c)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if interval := c.Alerts.RefreshInterval.Std(); interval > 0 {
		s, err := scheduler.New(alerts, c.Alerts.Token, interval)
		if err != nil {
			return fmt.Errorf("creating refresh scheduler: %w", err)
		}
		if err = s.Start(ctx); err != nil {
			return fmt.Errorf("starting refresh scheduler: %w", err)
		}
		defer s.Stop(ctx)
	}
	if err = e.Run(c.Gin.Addr); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
