package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var attachmentCmd = &cobra.Command{
	Use:   "attachment",
	Short: "Manage policy attachments on a Gatekey server",
}

var attachmentAddCmd = &cobra.Command{
	Use:   "add PROVIDER USER_ID POLICY_ID",
	Short: "Attach a policy to an identity",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		if err := cli.AttachPolicy(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		log.Info().Msgf("%s policy '%s' attached", greenCheck, args[2])
		return nil
	},
}

var attachmentRemoveCmd = &cobra.Command{
	Use:     "remove PROVIDER USER_ID POLICY_ID",
	Aliases: []string{"rm"},
	Short:   "Detach a single policy from an identity",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		attachment, err := cli.DetachPolicy(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}
		log.Info().Msgf("%s policy '%s' detached, remaining: [%s]",
			greenCheck, args[2], strings.Join(attachment.PolicyIDs(), ", "))
		return nil
	},
}

var attachmentGetCmd = &cobra.Command{
	Use:   "get PROVIDER USER_ID",
	Short: "Show the policies attached to an identity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		attachment, err := cli.GetAttachment(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		for _, id := range attachment.PolicyIDs() {
			fmt.Println(id)
		}
		return nil
	},
}

var attachmentClearCmd = &cobra.Command{
	Use:   "clear PROVIDER USER_ID",
	Short: "Remove the whole attachment record of an identity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		if err := cli.DeleteAttachment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		log.Info().Msgf("%s attachment cleared", greenCheck)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(attachmentCmd)
	attachmentCmd.AddCommand(attachmentAddCmd, attachmentRemoveCmd, attachmentGetCmd, attachmentClearCmd)
}
