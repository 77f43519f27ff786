package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "chatmsg",
		Short:        "Inspect and render chat message language files",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (yaml)")
	flags.String("lang-dir", "", "directory of language files")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("lang.dir", flags.Lookup("lang-dir"))
	_ = v.BindPFlag("logger.level", flags.Lookup("log-level"))

	app := &app{viper: v, configPath: &configPath}
	rootCmd.AddCommand(
		newCheckCommand(app),
		newRenderCommand(app),
		newWatchCommand(app),
	)
	return rootCmd
}
