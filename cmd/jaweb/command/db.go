// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/job-alerts/pkg/adapter/config"
	"github.com/momeni/job-alerts/pkg/adapter/db/postgres/prefsrp"
	"github.com/momeni/job-alerts/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init action creates the preferences
table. The action is idempotent, so re-running it against an already
initialized database is harmless.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the preferences table",
	RunE:  initDatabase,
}

func initDatabase(_ *cobra.Command, _ []string) error {
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
	err = p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		_, err := conn.Exec(ctx, prefsrp.Schema)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating preferences table: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbInitCmd)
}
