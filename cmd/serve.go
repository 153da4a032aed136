package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/store"
	"github.com/abhisek/triviaz/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Web.Addr = addr
		}
		if err := config.RequireWeb(&cfg); err != nil {
			return err
		}

		logger := log.New(os.Stderr, "web: ", log.LstdFlags)
		secret := []byte(cfg.Web.CookieSecret)
		if len(secret) == 0 {
			// Cookies will not survive a restart.
			secret = securecookie.GenerateRandomKey(32)
			if secret == nil {
				return fmt.Errorf("generate cookie secret")
			}
			logger.Printf("warning: no cookie secret configured, using a random one")
		}
		secure, _ := cmd.Flags().GetBool("secure-cookie")

		events := st.EventRepo()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bank, err := newBank(ctx, cfg, events)
		if err != nil {
			return err
		}

		srv := web.New(web.Options{
			Bank:         bank,
			Recorder:     store.NewRecorder(events),
			Quiz:         cfg.QuizSettings(),
			CookieSecret: secret,
			SecureCookie: secure,
			IdleTimeout:  cfg.Web.IdleTimeout,
			FetchTimeout: fetchTimeout(cfg),
			Logger:       logger,
		})
		return srv.ListenAndServe(ctx, cfg.Web.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().Bool("secure-cookie", false, "Mark the session cookie Secure (serve behind HTTPS)")
}
