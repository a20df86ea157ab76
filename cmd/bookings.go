package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Booking maintenance",
	}
	cmd.AddCommand(newBookingsCompletePastCmd())
	return cmd
}

func newBookingsCompletePastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete-past",
		Short: "Mark every confirmed booking dated before today as completed",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.service().Booking.CompleteAllPastBookings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "completed %d bookings\n", n)
			return nil
		},
	}
}
