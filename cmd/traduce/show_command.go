package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"traduce/internal/books"
	"traduce/internal/config"
	"traduce/internal/queue"
	"traduce/internal/scoring"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one queued book with its full verdict breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid queue item id %q", args[0])
			}
			return ctx.withStore(func(_ *config.Config, store *queue.Store) error {
				item, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if item == nil {
					return fmt.Errorf("queue item %d not found", id)
				}
				printItem(cmd, item)
				return nil
			})
		},
	}
	return cmd
}

func printItem(cmd *cobra.Command, item *queue.Item) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"ID", strconv.FormatInt(item.ID, 10)},
		{"Title", item.Title},
		{"Author", item.Author},
		{"Target language", item.TargetLanguage},
		{"Status", string(item.Status)},
		{"Needs review", yesNo(item.NeedsReview)},
		{"Created", item.CreatedAt.Local().Format("2006-01-02 15:04:05")},
		{"Updated", item.UpdatedAt.Local().Format("2006-01-02 15:04:05")},
	}
	if item.ReviewReason != "" {
		rows = append(rows, []string{"Review reason", item.ReviewReason})
	}
	if item.ErrorMessage != "" {
		rows = append(rows, []string{"Error", item.ErrorMessage})
	}
	if item.ProgressStage != "" {
		rows = append(rows, []string{"Progress", fmt.Sprintf("%s: %s", item.ProgressStage, item.ProgressMessage)})
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

	if item.Method != "" {
		fmt.Fprintf(out, "\nVerdict: %s (score %d)\n", item.Method, item.ConfidenceScore)
	}

	var breakdown scoring.Breakdown
	if item.BreakdownJSON != "" && json.Unmarshal([]byte(item.BreakdownJSON), &breakdown) == nil {
		factorRows := [][]string{
			{"Author match", strconv.Itoa(breakdown.AuthorMatch), strconv.Itoa(scoring.MaxAuthorMatch)},
			{"Title similarity", strconv.Itoa(breakdown.TitleSimilarity), strconv.Itoa(scoring.MaxTitleSimilarity)},
			{"Publisher known", strconv.Itoa(breakdown.PublisherKnown), strconv.Itoa(scoring.MaxPublisherKnown)},
			{"ISBN linked", strconv.Itoa(breakdown.ISBNLinked), strconv.Itoa(scoring.MaxISBNLinked)},
			{"Category match", strconv.Itoa(breakdown.CategoryMatch), strconv.Itoa(scoring.MaxCategoryMatch)},
			{"Date reasonable", strconv.Itoa(breakdown.DateReasonable), strconv.Itoa(scoring.MaxDateReasonable)},
			{"Total", strconv.Itoa(breakdown.Total), "110"},
		}
		fmt.Fprintln(out, renderTable([]string{"Factor", "Score", "Max"}, factorRows,
			[]columnAlignment{alignLeft, alignRight, alignRight}))
	}

	var winner books.Candidate
	if item.WinnerJSON != "" && json.Unmarshal([]byte(item.WinnerJSON), &winner) == nil {
		fmt.Fprintf(out, "\nWinning candidate: %q", winner.Title)
		if len(winner.Authors) > 0 {
			fmt.Fprintf(out, " by %s", strings.Join(winner.Authors, ", "))
		}
		if winner.Publisher != "" {
			fmt.Fprintf(out, " (%s", winner.Publisher)
			if winner.Year > 0 {
				fmt.Fprintf(out, ", %d", winner.Year)
			}
			fmt.Fprint(out, ")")
		} else if winner.Year > 0 {
			fmt.Fprintf(out, " (%d)", winner.Year)
		}
		if isbn := winner.ISBN(); isbn != "" {
			fmt.Fprintf(out, " ISBN %s", isbn)
		}
		fmt.Fprintln(out)
	}

	var notes []string
	if item.NotesJSON != "" && json.Unmarshal([]byte(item.NotesJSON), &notes) == nil && len(notes) > 0 {
		fmt.Fprintln(out, "\nNotes:")
		for _, note := range notes {
			fmt.Fprintf(out, "  - %s\n", note)
		}
	}
}
