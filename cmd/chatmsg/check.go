package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lifei6671/chatmsg/cmd/chatmsg/checker"
)

var errIssuesFound = errors.New("issues found")

func newCheckCommand(a *app) *cobra.Command {
	var (
		failOnError bool
		reference   string
	)

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Check language files for missing keys and bad patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			defer a.teardown()

			dir := a.cfg.Lang.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if reference == "" {
				reference = a.cfg.Lang.Default
			}

			res, err := checker.CheckLocales(dir, reference)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)

			if failOnError && res.HasIssues() {
				return errIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnError, "fail", false, "exit with code 1 if any issue found")
	cmd.Flags().StringVar(&reference, "reference", "", "reference language (default: lang.default)")
	return cmd
}

func printResult(w io.Writer, res *checker.Result) {
	fmt.Fprintln(w, "=== CHATMSG CHECK RESULT ===")
	fmt.Fprintln(w, "Reference:", res.Reference)
	fmt.Fprintln(w, "Languages:", res.Languages)
	fmt.Fprintln(w, "Total keys:", len(res.AllKeys))

	for _, lang := range res.Languages {
		fmt.Fprintf(w, "\n--- [%s] ---\n", lang)

		printList(w, "Missing keys", res.MissingKeys[lang])
		printList(w, "Redundant keys", res.RedundantKeys[lang])

		if errs := res.SyntaxErrors[lang]; len(errs) > 0 {
			fmt.Fprintln(w, "Syntax errors:")
			keys := make([]string, 0, len(errs))
			for k := range errs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(w, "  - %s: %v\n", key, errs[key])
			}
		} else {
			fmt.Fprintln(w, "Syntax errors: None")
		}
	}
}

func printList(w io.Writer, title string, arr []string) {
	if len(arr) == 0 {
		fmt.Fprintf(w, "%s: None\n", title)
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range arr {
		fmt.Fprintln(w, "  -", k)
	}
}
