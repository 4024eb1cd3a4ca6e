package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Manage known identities on a Gatekey server",
}

var identityAddCmd = &cobra.Command{
	Use:   "add PROVIDER USER_ID",
	Short: "Register an identity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		identity, err := cli.RegisterIdentity(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		log.Info().Msgf("%s registered identity '%s' @ '%s'", greenCheck, identity.UserID, identity.Provider)
		return nil
	},
}

var identityGetCmd = &cobra.Command{
	Use:   "get PROVIDER USER_ID",
	Short: "Look up an identity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		identity, err := cli.GetIdentity(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s @ %s\n", identity.UserID, identity.Provider)
		return nil
	},
}

var identityDeleteCmd = &cobra.Command{
	Use:     "delete PROVIDER USER_ID",
	Aliases: []string{"rm"},
	Short:   "Delete an identity",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		if err := cli.DeleteIdentity(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		log.Info().Msgf("%s identity deleted", greenCheck)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
	identityCmd.AddCommand(identityAddCmd, identityGetCmd, identityDeleteCmd)
}
