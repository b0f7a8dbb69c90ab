package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"traduce/internal/config"
	"traduce/internal/crossref"
	"traduce/internal/investigation"
	"traduce/internal/logging"
	"traduce/internal/queue"
	"traduce/internal/workflow"
)

func newInvestigateCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investigate <id>",
		Short: "Run a one-shot investigation of a queued book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid queue item id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				tables, err := crossref.Load(cfg.Investigation.CrossrefTablesPath)
				if err != nil {
					return err
				}
				engine, err := investigation.New(cfg, logging.NewNop(), tables)
				if err != nil {
					return err
				}
				manager := workflow.NewManager(cfg, store, engine, logging.NewNop())

				item, err := manager.RunOnce(cmd.Context(), id)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("queue item %d disappeared during investigation", id)
				}
				printItem(cmd, item)
				if item.Status == queue.StatusFailed || item.ErrorMessage != "" {
					return fmt.Errorf("investigation did not complete: %s", item.ErrorMessage)
				}
				return nil
			})
		},
	}
	return cmd
}
