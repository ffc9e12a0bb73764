package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finddups/finddups/cmd"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "finddups",
		Short: "A CLI duplicate file finder",
		Long: `A CLI application that finds files with byte-identical contents, regardless
of filename, under one or more root directories.
`,
	}

	// Parse persistent flags
	rootCmd.PersistentFlags().StringVarP(&cmd.FlagConfigFile, "config", "c", cmd.FlagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&cmd.FlagLogFile, "log", "l", cmd.FlagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&cmd.FlagLogLevel, "verbose", "v", "Verbose level")

	rootCmd.AddCommand(cmd.FindCommand())
	rootCmd.AddCommand(cmd.UpdateCommand())
	rootCmd.AddCommand(cmd.VersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
