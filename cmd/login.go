package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/darmiel/gatekey/internal/cliconfig"
)

var (
	loginToken    string
	loginProvider string
)

// loginCmd exchanges an upstream token and saves the resulting internal
// token as the credential for the configured server, so later admin
// commands authenticate automatically.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Issue a token and save it for this server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		signed, correlation, err := cli.IssueToken(cmd.Context(), loginProvider, loginToken)
		if err != nil {
			log.Error().Msgf("%s failed to issue token (correlation ID: %s)", redCross, correlation)
			return err
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			// no config yet, start fresh
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(viper.GetString(GatekeyAddrKey), signed); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return err
		}

		log.Info().Msgf("%s logged in, credential saved", greenCheck)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginToken, "token", "t", "", "Upstream identity token")
	loginCmd.Flags().StringVarP(&loginProvider, "provider", "p", "", "Identity provider to validate against")

	_ = loginCmd.MarkFlagRequired("token")
	_ = loginCmd.MarkFlagRequired("provider")
}
