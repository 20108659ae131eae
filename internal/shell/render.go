package shell

import (
	"fmt"
	"io"

	"github.com/tillpoint/checkout/internal/checkout/cart"
	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
)

const moneyPlaces = 2

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func writeInventory(w io.Writer, products []model.Product) {
	fmt.Fprintln(w, "Available products:")
	for i, p := range products {
		fmt.Fprintf(w, "%d) %s | $%s | qty: %d | ship: %s | exp: %s\n",
			i+1, p.Name, p.Price.StringFixed(moneyPlaces), p.Quantity,
			yesNo(p.IsShippable()), yesNo(p.Expiry == model.MayExpire))
	}
	fmt.Fprintln(w)
}

func writeMenu(w io.Writer) {
	fmt.Fprintln(w, "1. View cart")
	fmt.Fprintln(w, "2. Add item to cart")
	fmt.Fprintln(w, "3. Checkout")
	fmt.Fprintln(w, "4. View account")
	fmt.Fprintln(w, "5. Exit")
	fmt.Fprint(w, "Select option: ")
}

func writeCart(w io.Writer, c *cart.Cart) {
	if c.IsEmpty() {
		fmt.Fprintln(w, "Your cart is empty.")
		fmt.Fprintln(w)
		return
	}
	lines, err := c.Resolve()
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n\n", errx.Message(err))
		return
	}
	fmt.Fprintln(w, "Cart:")
	for _, l := range lines {
		fmt.Fprintf(w, "  %d x %s = %s\n", l.Quantity, l.Product.Name, l.LineTotal().StringFixed(moneyPlaces))
	}
	sub, err := c.Subtotal()
	if err == nil {
		fmt.Fprintf(w, "Subtotal: %s\n", sub.StringFixed(moneyPlaces))
	}
	fmt.Fprintln(w)
}

func writeReceipt(w io.Writer, r *model.Receipt) {
	fmt.Fprintln(w, "----- Receipt -----")
	for _, l := range r.Lines {
		if l.Shippable {
			fmt.Fprintf(w, "%d x %s (%s kg) = %s\n", l.Quantity, l.Name,
				l.WeightKg.StringFixed(moneyPlaces), l.LineTotal.StringFixed(moneyPlaces))
			continue
		}
		fmt.Fprintf(w, "%d x %s = %s\n", l.Quantity, l.Name, l.LineTotal.StringFixed(moneyPlaces))
	}
	fmt.Fprintf(w, "Subtotal: %s\n", r.Subtotal.StringFixed(moneyPlaces))
	fmt.Fprintf(w, "Total weight: %s kg\n", r.TotalWeightKg.StringFixed(moneyPlaces))
	fmt.Fprintf(w, "Shipping: %s\n", r.Shipping.StringFixed(moneyPlaces))
	fmt.Fprintf(w, "Total: %s\n", r.Total.StringFixed(moneyPlaces))
	fmt.Fprintf(w, "Balance left: %s\n", r.BalanceLeft.StringFixed(moneyPlaces))
	fmt.Fprintln(w, "-------------------")
	fmt.Fprintln(w)
}

func writeAccount(w io.Writer, a *model.Account, receipts []*model.Receipt) {
	fmt.Fprintf(w, "Account holder: %s\n", a.Name())
	fmt.Fprintf(w, "Current balance: %s\n", a.Balance().StringFixed(moneyPlaces))
	if len(receipts) > 0 {
		fmt.Fprintln(w, "Receipts:")
		for _, r := range receipts {
			fmt.Fprintf(w, "  %s  %s  total %s\n", r.IssuedAt.Format("2006-01-02 15:04"), r.ID, r.Total.StringFixed(moneyPlaces))
		}
	}
	fmt.Fprintln(w)
}
