package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"traduce/internal/config"
	"traduce/internal/preflight"
	"traduce/internal/queue"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Run preflight checks and inspect the queue database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				out := cmd.OutOrStdout()

				results := preflight.RunAll(cmd.Context(), cfg)
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					status := "FAIL"
					if result.Passed {
						status = "ok"
					}
					rows = append(rows, []string{result.Name, status, result.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))

				dbHealth, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				dbStatus := "ok"
				if dbHealth.Error != "" {
					dbStatus = dbHealth.Error
				} else if len(dbHealth.MissingColumns) > 0 {
					dbStatus = fmt.Sprintf("missing columns: %v", dbHealth.MissingColumns)
				} else if !dbHealth.IntegrityCheck {
					dbStatus = "integrity check failed"
				}
				fmt.Fprintf(out, "\nQueue database: %s (%d items, %s)\n", dbHealth.DBPath, dbHealth.TotalItems, dbStatus)

				if !preflight.AllPassed(results) {
					return fmt.Errorf("one or more preflight checks failed")
				}
				return nil
			})
		},
	}
}
