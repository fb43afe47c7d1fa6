package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newApiKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage export API keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Create a new API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			key, err := svc.ApiKeys.Generate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d\t%s\n", key.ID, key.Value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List API keys, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			keys, err := svc.ApiKeys.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintf(a.out, "%d\t%s\t%s\n", k.ID, k.Value, k.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}
			svc, err := a.services()
			if err != nil {
				return err
			}
			if err := svc.ApiKeys.Delete(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted api key %d\n", id)
			return nil
		},
	})

	return cmd
}
