package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/internal/dto/request"

	"github.com/spf13/cobra"
)

func newRestaurantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restaurant",
		Short: "Manage restaurants",
	}
	cmd.AddCommand(newRestaurantAddCmd())
	cmd.AddCommand(newRestaurantListCmd())
	return cmd
}

func newRestaurantAddCmd() *cobra.Command {
	var (
		req      request.RestaurantRequest
		email    string
		inactive bool
		table    int
		online   int
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email != "" {
				req.Email = &email
			}
			if inactive {
				active := false
				req.IsActive = &active
			}
			req.TableCapacity = &table
			req.OnlineCapacity = &online

			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			restaurant, err := a.service().Restaurant.CreateRestaurant(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created restaurant %q (slug %s, online capacity %d)\n",
				restaurant.Name, restaurant.Slug, restaurant.OnlineCapacity)
			return nil
		},
	}

	c.Flags().StringVar(&req.Name, "name", "", "restaurant name")
	c.Flags().StringVar(&req.Slug, "slug", "", "URL slug (derived from the name when empty)")
	c.Flags().StringVar(&req.Address, "address", "", "street address")
	c.Flags().StringVar(&req.City, "city", "", "city")
	c.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")
	c.Flags().StringVar(&email, "email", "", "contact email")
	c.Flags().StringVar(&req.Description, "description", "", "description")
	c.Flags().IntVar(&table, "table-capacity", entity.DefaultTableCapacity, "total seats")
	c.Flags().IntVar(&online, "online-capacity", entity.DefaultOnlineCapacity, "seats bookable online per time slot")
	c.Flags().BoolVar(&inactive, "inactive", false, "create the restaurant hidden")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("address")
	_ = c.MarkFlagRequired("city")
	_ = c.MarkFlagRequired("phone")
	return c
}

func newRestaurantListCmd() *cobra.Command {
	var city string

	c := &cobra.Command{
		Use:   "list",
		Short: "List restaurants, inactive included",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			req := &request.RestaurantFilterRequest{
				PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 100},
				City:             city,
				IncludeInactive:  true,
			}
			page, err := a.service().Restaurant.GetRestaurants(cmd.Context(), req)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tCITY\tACTIVE\tTABLE\tONLINE")
			for _, r := range page.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%d\n",
					r.Slug, r.Name, r.City, r.IsActive, r.TableCapacity, r.OnlineCapacity)
			}
			return tw.Flush()
		},
	}

	c.Flags().StringVar(&city, "city", "", "only restaurants in this city")
	return c
}
