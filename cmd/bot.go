package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the quiz as a Telegram bot",
	Long:  "Run the quiz as a Telegram bot. The token comes from telegram.token or TELEGRAM_BOT_TOKEN.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := config.RequireTelegram(&cfg); err != nil {
			return err
		}

		events := st.EventRepo()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bank, err := newBank(ctx, cfg, events)
		if err != nil {
			return err
		}

		quizCfg := cfg.QuizSettings()
		// Each chat plays under its own Telegram name.
		quizCfg.Username = ""

		bot, err := telegram.NewBot(cfg.Telegram.Token, telegram.Options{
			Bank:         bank,
			Recorder:     store.NewRecorder(events),
			Quiz:         quizCfg,
			PollTimeout:  cfg.Telegram.PollTimeout,
			FetchTimeout: fetchTimeout(cfg),
			Logger:       log.New(os.Stderr, "bot: ", log.LstdFlags),
		})
		if err != nil {
			return err
		}
		return bot.Run(ctx)
	},
}
