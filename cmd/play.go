package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/app"
	"github.com/abhisek/triviaz/internal/screens/play"
	"github.com/abhisek/triviaz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds the question source, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	events := st.EventRepo()
	bank, err := newBank(cmd.Context(), cfg, events)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Play: play.Deps{
			Bank:         bank,
			Recorder:     store.NewRecorder(events),
			Config:       cfg.QuizSettings(),
			FetchTimeout: fetchTimeout(cfg),
		},
		Events: events,
	})
}
