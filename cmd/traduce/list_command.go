package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"traduce/internal/config"
	"traduce/internal/queue"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued books and their investigation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				var statuses []queue.Status
				if trimmed := strings.TrimSpace(statusFlag); trimmed != "" {
					for _, raw := range strings.Split(trimmed, ",") {
						status, ok := queue.ParseStatus(raw)
						if !ok {
							return fmt.Errorf("unknown status %q", raw)
						}
						statuses = append(statuses, status)
					}
				}

				items, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}

				if jsonOutput {
					encoder := json.NewEncoder(cmd.OutOrStdout())
					encoder.SetIndent("", "  ")
					return encoder.Encode(items)
				}

				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for _, item := range items {
					score := ""
					if item.Method != "" {
						score = strconv.Itoa(item.ConfidenceScore)
					}
					rows = append(rows, []string{
						strconv.FormatInt(item.ID, 10),
						item.Title,
						item.Author,
						item.TargetLanguage,
						string(item.Status),
						item.Method,
						score,
						yesNo(item.NeedsReview),
					})
				}
				headers := []string{"ID", "Title", "Author", "Target", "Status", "Method", "Score", "Review"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (comma separated)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
