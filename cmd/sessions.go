package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Delete expired and long revoked sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.service().Auth.CleanSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "deleted %d sessions\n", n)
			return nil
		},
	})
	return cmd
}
