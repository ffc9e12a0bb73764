package cmd

import (
	"fmt"
	"os"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/finddups/finddups/pkg/runtime"
)

func UpdateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "update",
		Short: "Update to latest version",
		Long:  `This command can be used to self-update to the latest version.`,
	}

	command.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fmt.Println("Checking for the latest version...")
		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug("finddups/finddups"))
		if err != nil {
			return errors.Wrap(err, "detect latest version")
		}

		if !found || latest.LessOrEqual(runtime.Version) {
			fmt.Printf("Already using the latest version: %s\n", runtime.Version)
			return nil
		}

		exe, err := os.Executable()
		if err != nil {
			return errors.Wrap(err, "locate current executable")
		}

		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return errors.Wrap(err, "update binary")
		}

		fmt.Printf("Successfully updated to the latest version: %s\n", latest.Version())
		return nil
	}

	return command
}
