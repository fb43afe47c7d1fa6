package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/services"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var (
		name string
		role int
		code string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a 5-digit access code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services()
			if err != nil {
				return err
			}
			user, err := svc.Users.Create(cmd.Context(), services.UserInput{
				Name:     name,
				Role:     role,
				Password: services.PasswordInput{Value: code},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created user %d (%s, role %d)\n", user.ID, user.Name, user.Role)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().IntVar(&role, "role", models.RoleAdmin, "1 = driver, 2 = admin")
	create.Flags().StringVar(&code, "code", "", "5-digit access code")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("code")

	cmd.AddCommand(create)
	return cmd
}
