package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	issueReqToken    string
	issueReqProvider string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Exchange an upstream token for a signed internal token",
	Long: `Sends the upstream identity token to the configured Gatekey server
and prints the signed internal token to stdout.`,
	Example: `  # uses GATEKEY_ADDR
  gatekey issue --provider azure --token $JWT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Debug().Msgf("Requesting token from provider '%s'...", issueReqProvider)
		signed, correlation, err := cli.IssueToken(cmd.Context(), issueReqProvider, issueReqToken)
		if err != nil {
			log.Error().Msgf("%s failed to issue token (correlation ID: %s)", redCross, correlation)
			return err
		}

		log.Info().Msgf("%s token issued successfully", greenCheck)

		// the bare token goes to stdout so it can be piped
		fmt.Println(signed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issueCmd)

	issueCmd.Flags().StringVarP(&issueReqToken, "token", "t", "", "Upstream identity token")
	issueCmd.Flags().StringVarP(&issueReqProvider, "provider", "p", "", "Identity provider to validate against")

	_ = issueCmd.MarkFlagRequired("token")
	_ = issueCmd.MarkFlagRequired("provider")
}
