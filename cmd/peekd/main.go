package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"peekd/internal/config"
	"peekd/internal/log"
	"peekd/internal/tui"
)

var (
	version = "dev"

	// Shared by all subcommands, loaded by the root PersistentPreRun.
	cfg        *config.Config
	configPath string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "peekd",
		Short:   "Peek into files through named, refreshable views",
		Long:    `Peekd runs line-selection commands like head, tail and shuf over chosen files and keeps the captured output in named views you can refresh, re-command and columnify.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.LoadConfigFile(configPath)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return err
			}
			log.SetDebug(debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(commandsCmd())
	rootCmd.AddCommand(columnifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive interface",
		Long:  `Launch the interactive file browser, command picker and view pager. This is also what running peekd without a subcommand does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cfg)
		},
	}
}
