package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Manage policies on a Gatekey server",
}

var policyContentFile string

var policyPutCmd = &cobra.Command{
	Use:   "put ID",
	Short: "Create or replace a policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		content, err := os.ReadFile(policyContentFile)
		if err != nil {
			return fmt.Errorf("reading policy file: %w", err)
		}

		cli, err := getClient()
		if err != nil {
			return err
		}
		if err := cli.UpsertPolicy(cmd.Context(), id, string(content)); err != nil {
			return err
		}

		log.Info().Msgf("%s policy '%s' stored", greenCheck, id)
		return nil
	},
}

var policyGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Print a policy's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		content, err := cli.GetPolicy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

var policyDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a policy",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}
		if err := cli.DeletePolicy(cmd.Context(), args[0]); err != nil {
			return err
		}
		log.Info().Msgf("%s policy '%s' deleted", greenCheck, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyPutCmd, policyGetCmd, policyDeleteCmd)

	policyPutCmd.Flags().StringVarP(&policyContentFile, "file", "f", "", "File containing the policy content")
	_ = policyPutCmd.MarkFlagRequired("file")
}
