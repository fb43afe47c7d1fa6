package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glnc_delivery/internal/security"
)

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <code>",
		Short: "Print the stored form of an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if !security.IsAccessCode(args[0]) {
				return fmt.Errorf("access code must be exactly 5 digits")
			}
			hashed, err := a.hasher.Hash(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, hashed)
			return nil
		},
	}
}
