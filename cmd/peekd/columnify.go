package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"peekd/internal/view"
)

// columnifyCmd pipes a file, or stdin, through the table formatter. The
// separator comes from the --delimiter flag, or the delimiter table when
// a filename is given.
func columnifyCmd() *cobra.Command {
	var delimiter string

	cmd := &cobra.Command{
		Use:   "columnify [file]",
		Short: "Format delimited content into aligned columns",
		Long:  `Format a file, or stdin when no file is given, into aligned columns. The column separator is taken from the --delimiter flag or, for files, from the delimiter table keyed by file pattern.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content []byte
			var err error

			if len(args) == 1 {
				path := view.ExpandPath(args[0])
				content, err = os.ReadFile(path)
				if err != nil {
					return err
				}
				if delimiter == "" {
					delimiter, _ = cfg.SeparatorFor(path)
				}
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			out, err := view.Columnify(view.ExecRunner{}, cfg.Columnify.Program, delimiter, content)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "Column separator (default: from the delimiter table, or whitespace)")

	return cmd
}
