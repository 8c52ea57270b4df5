package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show review statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := opts.user()
			if err != nil {
				return err
			}
			st, err := opts.app.Reviews.GetStats(cmd.Context(), userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total reviews:   %d\n", st.TotalReviews)
			fmt.Fprintf(out, "Average rating:  %.1f\n", st.AverageRating)
			fmt.Fprintf(out, "Success rate:    %d%%\n", st.SuccessRate)
			fmt.Fprintf(out, "Current streak:  %d\n", st.CurrentStreak)
			fmt.Fprintf(out, "Best streak:     %d\n", st.BestStreak)
			fmt.Fprintf(out, "Last 7 days:     %d\n", st.ReviewsLast7Days)
			return nil
		},
	}
}
