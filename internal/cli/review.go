package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/scheduler"
	"algo_review_keep/internal/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	goodColor   = color.New(color.FgGreen)
	badColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

func newReviewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Start an interactive review session for due problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := opts.user()
			if err != nil {
				return err
			}
			s, err := session.New(userID, opts.app.Store,
				session.WithClock(opts.app.Clock),
				session.WithLogger(opts.app.Logger),
			)
			if err != nil {
				return err
			}
			p, err := newPrompter(opts.in, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer p.Close()
			return runReview(cmd.Context(), s, p, cmd.OutOrStdout())
		},
	}
}

// runReview は期日の来た問題を1問ずつ提示し、評価を記録します
func runReview(ctx context.Context, s *session.Session, p Prompter, out io.Writer) error {
	if err := s.Start(ctx); err != nil {
		return fmt.Errorf("load due problems: %w", err)
	}
	if s.Phase() == session.PhaseEmpty {
		fmt.Fprintln(out, "No problems due for review. Nice work!")
		return nil
	}
	fmt.Fprintf(out, "%d problem%s due for review.\n", s.Remaining(), plural(s.Remaining()))

	quit := false
	for !quit && s.Phase() == session.PhasePresenting {
		item, _ := s.Current()
		printItem(out, s, item)

		line, err := p.Prompt("[Enter] show notes  [s] skip  [q] quit > ")
		if err != nil {
			break
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q":
			quit = true
			continue
		case "s":
			if err := s.Skip(); err != nil {
				return err
			}
			continue
		}

		revealed, err := s.Reveal()
		if err != nil {
			return err
		}
		printNotes(out, revealed)

		quit, err = rateCurrent(ctx, s, p, out)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nReviewed %d problem%s.\n", s.Completed(), plural(s.Completed()))
	if s.Phase() == session.PhaseEmpty {
		goodColor.Fprintln(out, "All caught up!")
	}
	return nil
}

// rateCurrent は有効な評価が入力されるまで繰り返します。戻り値 true は終了要求
func rateCurrent(ctx context.Context, s *session.Session, p Prompter, out io.Writer) (bool, error) {
	for {
		line, err := p.Prompt("How well did you remember? 1=blackout 2=hard 3=fair 4=good 5=perfect [q] quit > ")
		if err != nil {
			return true, nil
		}
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "q") {
			return true, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || !scheduler.Rating(n).IsValid() {
			badColor.Fprintln(out, "Please enter a number from 1 to 5.")
			continue
		}

		outcome, err := s.Rate(ctx, scheduler.Rating(n))
		switch {
		case errors.Is(err, session.ErrRefreshFailed):
			printOutcome(out, outcome)
			badColor.Fprintln(out, "Saved, but could not load the next problems. Run review again.")
			return true, nil
		case errors.Is(err, model.ErrConflict):
			badColor.Fprintln(out, "This problem was updated elsewhere. Rate it again.")
			continue
		case err != nil:
			return true, fmt.Errorf("save review: %w", err)
		}
		printOutcome(out, outcome)
		return false, nil
	}
}

func printItem(out io.Writer, s *session.Session, item session.Item) {
	pos := s.Completed() + 1
	total := s.Completed() + s.Remaining()
	fmt.Fprintln(out)
	headerColor.Fprintf(out, "[%d/%d] #%d %s", pos, total, item.ProblemID, item.Title)
	fmt.Fprintf(out, " (%s, %s)\n", model.DifficultyLabel(item.Difficulty), item.Language)
	last := "never"
	if item.Schedule.LastReviewedAt != nil {
		last = item.Schedule.LastReviewedAt.Format("2006-01-02")
	}
	dimColor.Fprintf(out, "solved %s, reviewed %d time%s, last %s\n",
		item.SolvedAt.Format("2006-01-02"), item.Schedule.ReviewCount, plural(item.Schedule.ReviewCount), last)
}

func printNotes(out io.Writer, item session.Item) {
	if item.Notes != "" {
		fmt.Fprintf(out, "--- notes ---\n%s\n", item.Notes)
	}
	if item.Solution != "" {
		fmt.Fprintf(out, "--- solution ---\n%s\n", item.Solution)
	}
	if item.Notes == "" && item.Solution == "" {
		dimColor.Fprintln(out, "(no notes)")
	}
}

func printOutcome(out io.Writer, o session.Outcome) {
	c := goodColor
	if !o.Rating.Passed() {
		c = badColor
	}
	c.Fprintf(out, "%s: next review in %d day%s (%s)\n",
		o.Rating, o.Result.Interval, plural(o.Result.Interval), o.Result.NextReviewDate.Format("2006-01-02"))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
