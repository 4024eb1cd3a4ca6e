package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version information of a remote Gatekey server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		info, _, err := cli.Info(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s %s (commit: %s)\n",
			color.New(color.Bold).Sprint(info.Service),
			info.Version,
			info.CommitHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
