package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show past quiz sessions, or the answers of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			answers, err := repo.SessionAnswers(ctx, args[0])
			if err != nil {
				return fmt.Errorf("query answers: %w", err)
			}
			if len(answers) == 0 {
				fmt.Fprintf(out, "No answers recorded for session %s.\n", args[0])
				return nil
			}
			printAnswers(out, answers)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No quiz sessions recorded yet.")
			return nil
		}
		printSessions(out, sessions)

		acc, err := repo.AccuracyByDifficulty(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Accuracy by difficulty")
			t := newTable(out,
				column{title: "Level", width: 8},
				column{title: "Correct", width: 11, right: true},
				column{title: "Rate", width: 7, right: true},
			)
			t.header()
			for _, a := range acc {
				t.row(a.Difficulty, fmt.Sprintf("%d/%d", a.Correct, a.Answered), fmt.Sprintf("%.1f%%", a.Accuracy()*100))
			}
		}
		return nil
	},
}

func printAnswers(out io.Writer, answers []store.AnswerRecord) {
	t := newTable(out,
		column{title: "#", width: 3, right: true},
		column{title: "Time", width: 8},
		column{title: "Level", width: 6},
		column{title: "Question", width: 44},
		column{title: "Answer", width: 20},
		column{title: "OK", width: 2},
	)
	t.header()
	for i, a := range answers {
		ok := mark(true)
		if !a.Correct {
			ok = mark(false) + " " + a.CorrectAnswer
		}
		t.row(i+1, a.Timestamp.Local().Format("15:04:05"), a.Difficulty, a.QuestionText, a.Answer, ok)
	}
}

func printSessions(out io.Writer, sessions []store.SessionRecord) {
	t := newTable(out,
		column{title: "Session", width: 36},
		column{title: "Started", width: 16},
		column{title: "Player", width: 12},
		column{title: "Source", width: 8},
		column{title: "Score", width: 7, right: true},
		column{title: "Level", width: 6},
		column{title: "State", width: 10},
	)
	t.header()
	for _, s := range sessions {
		player := s.Username
		if player == "" {
			player = "-"
		}
		state := s.FinalState
		if !s.Ended {
			state = "unfinished"
		}
		t.row(s.SessionID, s.StartedAt.Local().Format("2006-01-02 15:04"), player, s.Source,
			fmt.Sprintf("%d/%d", s.Score, s.Answered), s.Difficulty, state)
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
