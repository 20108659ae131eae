package inventory

import (
	"fmt"
	"sync"

	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
)

// Withdrawal removes Quantity units of the named product at commit.
type Withdrawal struct {
	Name     string
	Quantity int
}

// Inventory exclusively owns the product records. Callers receive copies and
// refer back to products by name.
type Inventory struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*model.Product
}

// New builds an inventory preserving the given order. Duplicate names are
// rejected since the name is the product key.
func New(products []model.Product) (*Inventory, error) {
	inv := &Inventory{
		order:    make([]string, 0, len(products)),
		products: make(map[string]*model.Product, len(products)),
	}
	for i := range products {
		p := products[i]
		if p.Quantity < 0 {
			return nil, errx.Newf(errx.KindInvalidInput, "product %q has negative quantity", p.Name)
		}
		if _, dup := inv.products[p.Name]; dup {
			return nil, errx.Newf(errx.KindInvalidInput, "duplicate product %q", p.Name)
		}
		inv.order = append(inv.order, p.Name)
		inv.products[p.Name] = &p
	}
	return inv, nil
}

// Len returns the number of products.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.order)
}

// List returns snapshots of all products in catalog order.
func (inv *Inventory) List() []model.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make([]model.Product, 0, len(inv.order))
	for _, name := range inv.order {
		out = append(out, *inv.products[name])
	}
	return out
}

// ByIndex returns the n-th product, counting from 1.
func (inv *Inventory) ByIndex(n int) (model.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if n < 1 || n > len(inv.order) {
		return model.Product{}, errx.Newf(errx.KindNotFound, "no item number %d; choose between 1 and %d", n, len(inv.order))
	}
	return *inv.products[inv.order[n-1]], nil
}

// Product returns the product with the given name.
func (inv *Inventory) Product(name string) (model.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	p, ok := inv.products[name]
	if !ok {
		return model.Product{}, errx.Newf(errx.KindNotFound, "unknown product %q", name)
	}
	return *p, nil
}

// Commit applies every withdrawal or none of them. All withdrawals are
// validated against current stock before the first decrement.
func (inv *Inventory) Commit(withdrawals []Withdrawal) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	need := make(map[string]int, len(withdrawals))
	for _, w := range withdrawals {
		if w.Quantity <= 0 {
			return errx.Newf(errx.KindInvalidQuantity, "withdrawal of %d %s must be positive", w.Quantity, w.Name)
		}
		p, ok := inv.products[w.Name]
		if !ok {
			return errx.Newf(errx.KindNotFound, "unknown product %q", w.Name)
		}
		need[w.Name] += w.Quantity
		if need[w.Name] > p.Quantity {
			return errx.Newf(errx.KindInsufficientStock, "insufficient stock for %s", w.Name)
		}
	}

	for name, qty := range need {
		inv.products[name].Quantity -= qty
	}
	return nil
}

// String returns a short summary for logs.
func (inv *Inventory) String() string {
	return fmt.Sprintf("inventory(%d products)", inv.Len())
}
