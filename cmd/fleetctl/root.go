package main

import (
	"io"

	"github.com/spf13/cobra"

	"glnc_delivery/internal/security"
	"glnc_delivery/internal/services"
)

type app struct {
	out    io.Writer
	hasher *security.PasswordHasher
	open   func() (*services.Services, error)
	svc    *services.Services
}

// services opens the database on first use so that commands like hash run
// without one.
func (a *app) services() (*services.Services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := a.open()
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fleetctl",
		Short:         "Administrative tool for the delivery back office",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	root.AddCommand(newApiKeyCmd(a), newUserCmd(a), newHashCmd(a))
	return root
}
