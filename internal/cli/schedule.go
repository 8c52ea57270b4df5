package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"algo_review_keep/internal/model"

	"github.com/spf13/cobra"
)

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var horizon int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show upcoming reviews grouped by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := opts.user()
			if err != nil {
				return err
			}
			schedule, err := opts.app.Reviews.GetSchedule(cmd.Context(), userID, horizon)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), schedule)
			return nil
		},
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "days of daily load to show (0 = configured default)")
	return cmd
}

func printSchedule(out io.Writer, s *model.ScheduleResponse) {
	if s.Total == 0 {
		fmt.Fprintln(out, "Nothing scheduled yet. Log a solved problem to get started.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	sections := []struct {
		title string
		items []*model.Submission
	}{
		{"OVERDUE", s.Overdue},
		{"TODAY", s.DueToday},
		{"THIS WEEK", s.DueThisWeek},
		{"LATER", s.PlannedLater},
	}
	for _, sec := range sections {
		headerColor.Fprintf(tw, "%s (%d)\n", sec.title, len(sec.items))
		for _, sub := range sec.items {
			due := "-"
			if sub.NextReviewDate != nil {
				due = sub.NextReviewDate.Format("2006-01-02")
			}
			title := sub.Title()
			if title == "" {
				title = fmt.Sprintf("problem %d", sub.ProblemID)
			}
			diff := "?"
			if sub.Problem != nil {
				diff = model.DifficultyLabel(sub.Problem.Difficulty)
			}
			fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", sub.ProblemID, title, diff, due)
		}
	}
	tw.Flush()

	fmt.Fprintln(out)
	headerColor.Fprintln(out, "DAILY LOAD")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range s.LoadByDay {
		fmt.Fprintf(tw, "  %s\t%d\n", d.Date.Format("2006-01-02 Mon"), d.Count)
	}
	tw.Flush()

	if s.PeakDay != nil {
		fmt.Fprintf(out, "Peak: %s (%d)  ", s.PeakDay.Date.Format("2006-01-02"), s.PeakDay.Count)
	}
	fmt.Fprintf(out, "Max: %d  Total: %d\n", s.MaxLoad, s.Total)
}
