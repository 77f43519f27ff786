package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lifei6671/chatmsg"
)

func newWatchCommand(a *app) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Load a language and reload it whenever its file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			defer a.teardown()

			mc := a.cfg.Messages()
			mc.Logger = a.logger
			if lang == "" {
				lang = mc.DefaultLanguage
			}

			// nothing is sent, so the bundle needs no host
			bundle := chatmsg.NewDefault(mc, nil)
			if err := bundle.SetLanguage(lang); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bundle.Catalog().Watch(ctx)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language to watch (default: lang.default)")
	return cmd
}
