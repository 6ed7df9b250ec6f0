package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"peekd/internal/command"
	"peekd/internal/errors"
	"peekd/internal/view"
)

// viewCmd runs a single registered command over the given files and
// prints the captured output, without entering the interactive session.
func viewCmd() *cobra.Command {
	var (
		key       string
		lineCount int
		showName  bool
	)

	cmd := &cobra.Command{
		Use:   "view [files...]",
		Short: "Run a command over files and print the result",
		Long:  `Run one registered line-selection command over the given files and print the captured output. With no files, reads the path interactively from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := command.NewRegistry(cfg.Commands)
			if err != nil {
				return err
			}

			runes := []rune(key)
			if len(runes) != 1 {
				return errors.Newf("command key must be a single character, got %q", key)
			}
			desc, ok := registry.Lookup(runes[0])
			if !ok {
				return errors.NewCommandError("no command registered", runes[0], errors.InvalidCommandKey, nil)
			}

			files, err := view.ResolveFiles(args, "", stdinPrompt(cmd))
			if err != nil {
				return err
			}

			controller := view.NewController(cfg, view.NewStore(), view.ExecRunner{})
			v, err := controller.Create(desc, files, lineCount)
			if err != nil {
				// A failing invocation may still have partial output worth showing
				if v != nil && v.Content() != "" {
					fmt.Fprint(cmd.OutOrStdout(), v.Content())
				}
				return err
			}

			if showName {
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", v.Name)
			}
			fmt.Fprint(cmd.OutOrStdout(), v.Content())
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "h", "Registered command key to run")
	cmd.Flags().IntVarP(&lineCount, "count", "n", 0, "Line count (0 uses the configured default)")
	cmd.Flags().BoolVar(&showName, "name", false, "Print the derived view name before the output")

	return cmd
}

// stdinPrompt asks for a file path on the command's input stream. Used as
// the last-resort resolver source when no files were given.
func stdinPrompt(cmd *cobra.Command) view.PromptFunc {
	return func() (string, bool) {
		fmt.Fprint(cmd.OutOrStdout(), "file: ")
		var path string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &path); err != nil {
			return "", false
		}
		return path, true
	}
}
