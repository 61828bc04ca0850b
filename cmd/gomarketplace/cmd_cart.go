package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domcart "example.com/gomarketplace/internal/domain/cart"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change the stored cart",
}

var (
	addTitle string
	addImage string
	addPrice float64
)

func init() {
	cartAddCmd.Flags().StringVar(&addTitle, "title", "", "display title")
	cartAddCmd.Flags().StringVar(&addImage, "image", "", "image URL")
	cartAddCmd.Flags().Float64Var(&addPrice, "price", 0, "unit price")
	_ = cartAddCmd.MarkFlagRequired("title")

	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartIncCmd, cartDecCmd)
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.cart.Items(cmd.Context())
		if err != nil {
			return err
		}
		return printCart(cmd.OutOrStdout(), items)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a product with quantity 1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, added, err := a.cart.AddToCart(cmd.Context(), domcart.Product{
			ID:       args[0],
			Title:    addTitle,
			ImageURL: addImage,
			Price:    addPrice,
		})
		if err != nil {
			return err
		}
		if !added {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is already in the cart\n", args[0])
		}
		return printCart(cmd.OutOrStdout(), items)
	},
}

var cartIncCmd = &cobra.Command{
	Use:   "inc <id>",
	Short: "Increase the quantity of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.cart.Increment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printCart(cmd.OutOrStdout(), items)
	},
}

var cartDecCmd = &cobra.Command{
	Use:   "dec <id>",
	Short: "Decrease the quantity of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		items, err := a.cart.Decrement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printCart(cmd.OutOrStdout(), items)
	},
}

func printCart(w io.Writer, items []domcart.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tQTY")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", item.ID, item.Title, item.Price, item.Quantity)
	}
	c := domcart.Cart(items)
	fmt.Fprintf(tw, "\t\t%.2f\t%d\n", c.TotalPrice(), c.TotalQuantity())
	return tw.Flush()
}
