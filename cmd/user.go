package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserPromoteCmd())
	return cmd
}

func newUserPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email-or-username>",
		Short: "Grant the admin role to a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.service().Auth.PromoteToAdmin(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s is now an admin\n", args[0])
			return nil
		},
	}
}
