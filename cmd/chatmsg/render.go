package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lifei6671/chatmsg"
)

// terminal is a recipient printing to the command output. When rich is set
// it asks for chat components, which the printConsole shows as tellraw.
type terminal struct {
	out  io.Writer
	rich bool
}

func (t *terminal) Name() string { return "@s" }

func (t *terminal) SendMessage(text string) error {
	_, err := fmt.Fprintln(t.out, text)
	return err
}

func (t *terminal) SupportsRichText() bool { return t.rich }

// printConsole prints console commands instead of running them.
type printConsole struct {
	out io.Writer
}

func (c printConsole) DispatchCommand(command string) error {
	_, err := fmt.Fprintln(c.out, command)
	return err
}

func newRenderCommand(a *app) *cobra.Command {
	var (
		lang    string
		asJSON  bool
		literal bool
	)

	cmd := &cobra.Command{
		Use:   "render <key> [params...]",
		Short: "Compile a message and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			defer a.teardown()

			out := cmd.OutOrStdout()
			mc := a.cfg.Messages()
			mc.Logger = a.logger
			if lang != "" {
				mc.DefaultLanguage = lang
			}
			bundle := chatmsg.New(mc, chatmsg.NewCommandHost(printConsole{out: out}))

			params := make([]any, 0, len(args)-1)
			for _, p := range args[1:] {
				params = append(params, p)
			}

			var msg *chatmsg.Message
			if literal {
				msg = bundle.FromLiteral(args[0], params...)
			} else {
				if err := bundle.Init(); err != nil {
					return err
				}
				m, ok := bundle.FromKey(args[0], params...)
				if !ok {
					return fmt.Errorf("key %q not found in %s", args[0], bundle.Catalog().Language())
				}
				msg = m
			}

			return bundle.Dispatcher().Send(&terminal{out: out, rich: asJSON}, msg)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language to load (default: lang.default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tellraw command instead of plain text")
	cmd.Flags().BoolVar(&literal, "literal", false, "treat the first argument as a pattern, not a key")
	return cmd
}
