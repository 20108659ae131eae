package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
)

// Stock resolves product names against the owning inventory.
type Stock interface {
	Product(name string) (model.Product, error)
}

// Line is a requested quantity of a product, referenced by name.
type Line struct {
	Product  string
	Quantity int
}

// Cart is one shopper's ordered selection, at most one line per product.
// Stock is read on every add but only decremented by a checkout commit.
type Cart struct {
	stock Stock
	lines []Line
}

// New returns an empty cart that validates against stock.
func New(stock Stock) *Cart {
	return &Cart{stock: stock}
}

// Add merges qty units of the named product into the cart. The merged
// quantity must fit current stock; on failure the cart is unchanged. A merged
// line is replaced and moves to the end of the cart.
func (c *Cart) Add(name string, qty int) error {
	if qty <= 0 {
		return errx.Newf(errx.KindInvalidQuantity, "quantity must be greater than zero")
	}
	p, err := c.stock.Product(name)
	if err != nil {
		return err
	}
	if qty > p.Quantity {
		return errx.Newf(errx.KindInsufficientStock, "requested quantity exceeds available stock for %s", p.Name)
	}

	i := c.indexOf(name)
	if i < 0 {
		c.lines = append(c.lines, Line{Product: name, Quantity: qty})
		return nil
	}
	merged := c.lines[i].Quantity + qty
	if merged > p.Quantity {
		return errx.Newf(errx.KindInsufficientStock, "requested quantity exceeds available stock for %s", p.Name)
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.lines = append(c.lines, Line{Product: name, Quantity: merged})
	return nil
}

// Remove drops the line for name, reporting whether one existed.
func (c *Cart) Remove(name string) bool {
	i := c.indexOf(name)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Lines returns a copy of the lines in order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Resolve pairs every line with a current snapshot of its product.
func (c *Cart) Resolve() ([]model.PricedLine, error) {
	out := make([]model.PricedLine, 0, len(c.lines))
	for _, l := range c.lines {
		p, err := c.stock.Product(l.Product)
		if err != nil {
			return nil, err
		}
		out = append(out, model.PricedLine{Product: p, Quantity: l.Quantity})
	}
	return out, nil
}

// Subtotal sums price times quantity over all lines.
func (c *Cart) Subtotal() (decimal.Decimal, error) {
	lines, err := c.Resolve()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total, nil
}

func (c *Cart) indexOf(name string) int {
	for i, l := range c.lines {
		if l.Product == name {
			return i
		}
	}
	return -1
}
