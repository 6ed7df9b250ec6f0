package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"peekd/internal/command"
)

// commandsCmd lists the registered line-selection commands.
func commandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the registered commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := command.NewRegistry(cfg.Commands)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tPROGRAM\tLINE FLAG\tEXTRA ARGS\tFILES")
			for _, d := range registry.Descriptors() {
				files := "any"
				if d.SingleFileOnly {
					files = "one"
				}
				fmt.Fprintf(w, "%c\t%s\t%s\t%s\t%s\n",
					d.Key, d.Program, d.LineFlag, strings.Join(d.ExtraArgs, " "), files)
			}
			return w.Flush()
		},
	}
}
