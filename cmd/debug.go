package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatekey/internal/token"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debugging commands",
	Long:  `Commands for debugging Gatekey installations and issued tokens`,
}

// debugDecodeCmd decodes an internal token without verifying its
// signature. Inspection only; never treat the output as authenticated.
var debugDecodeCmd = &cobra.Command{
	Use:   "decode TOKEN",
	Short: "Decode an internal token and print its claims",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, _, err := jwt.NewParser().ParseUnverified(args[0], jwt.MapClaims{})
		if err != nil {
			return fmt.Errorf("parsing token: %w", err)
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return fmt.Errorf("unexpected claims type %T", parsed.Claims)
		}

		// inflate the policy claim so it is readable
		if encoded, ok := claims[token.PolicyKey].(string); ok {
			if content, err := token.DecodePolicy(encoded); err == nil {
				claims[token.PolicyKey] = content
			}
		}

		spew.Dump(claims)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugDecodeCmd)
}
