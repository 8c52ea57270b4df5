package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRemindCmd(opts *rootOptions) *cobra.Command {
	var weekly bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send due-review reminder emails (or a weekly summary with --weekly)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if weekly {
				userID, err := opts.user()
				if err != nil {
					return err
				}
				sent, err := opts.app.Reminders.SendWeeklySummary(cmd.Context(), userID)
				if err != nil {
					return err
				}
				if sent {
					fmt.Fprintln(out, "Weekly summary sent.")
				} else {
					fmt.Fprintln(out, "Weekly summary skipped (notifications off or nothing solved this week).")
				}
				return nil
			}

			summary, err := opts.app.Reminders.SendDueReminders(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Users: %d  Sent: %d  Failed: %d\n", summary.UsersProcessed, summary.EmailsSent, summary.EmailsFailed)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, r := range summary.Results {
				fmt.Fprintf(tw, "  %s\t%d\t%s\n", r.Email, r.Problems, r.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&weekly, "weekly", false, "send the weekly summary to --user instead")
	return cmd
}
