package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tillpoint/checkout/internal/checkout/cart"
	"github.com/tillpoint/checkout/internal/checkout/inventory"
	"github.com/tillpoint/checkout/internal/checkout/model"
	"github.com/tillpoint/checkout/internal/checkout/repo"
	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

// Checkout is the engine as seen from the menu.
type Checkout interface {
	Process(ctx context.Context, account *model.Account, c *cart.Cart) (*model.Receipt, error)
}

// Config wires the shell to its collaborators. A nil Journal keeps receipts
// in memory.
type Config struct {
	In        io.Reader
	Out       io.Writer
	Inventory *inventory.Inventory
	Checkout  Checkout
	Account   *model.Account
	Journal   repo.ReceiptRepository
}

// Shell is the console menu loop for one shopper.
type Shell struct {
	in      *bufio.Scanner
	out     io.Writer
	inv     *inventory.Inventory
	engine  Checkout
	account *model.Account
	journal repo.ReceiptRepository
	cart    *cart.Cart
}

// New returns a shell with an empty cart.
func New(cfg Config) *Shell {
	journal := cfg.Journal
	if journal == nil {
		journal = repo.NewMemoryReceiptRepository()
	}
	return &Shell{
		in:      bufio.NewScanner(cfg.In),
		out:     cfg.Out,
		inv:     cfg.Inventory,
		engine:  cfg.Checkout,
		account: cfg.Account,
		journal: journal,
		cart:    cart.New(cfg.Inventory),
	}
}

// Run shows the menu until the shopper exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		writeInventory(s.out, s.inv.List())
		writeMenu(s.out)

		choice, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out, "Good-bye!")
			return s.in.Err()
		}

		switch choice {
		case "1":
			writeCart(s.out, s.cart)
		case "2":
			s.addItem()
		case "3":
			s.checkout(ctx)
		case "4":
			s.viewAccount(ctx)
		case "5":
			fmt.Fprintln(s.out, "Good-bye!")
			return nil
		default:
			fmt.Fprintln(s.out, "Please enter a number between 1 and 5.")
			fmt.Fprintln(s.out)
		}
	}
}

func (s *Shell) addItem() {
	idx, err := s.promptInt("Enter item number: ")
	if err != nil {
		s.writeError(err)
		return
	}
	qty, err := s.promptInt("Enter quantity: ")
	if err != nil {
		s.writeError(err)
		return
	}

	p, err := s.inv.ByIndex(idx)
	if err != nil {
		s.writeError(err)
		return
	}
	if err := s.cart.Add(p.Name, qty); err != nil {
		logx.Debug().Str("product", p.Name).Int("quantity", qty).Err(err).Msg("add to cart refused")
		s.writeError(err)
		return
	}
	logx.Debug().Str("product", p.Name).Int("quantity", qty).Msg("added to cart")
	fmt.Fprintln(s.out, "Item added successfully.")
	fmt.Fprintln(s.out)
}

func (s *Shell) checkout(ctx context.Context) {
	receipt, err := s.engine.Process(ctx, s.account, s.cart)
	if err != nil {
		s.writeError(err)
		return
	}
	writeReceipt(s.out, receipt)

	if err := s.journal.Save(ctx, receipt); err != nil {
		logx.Warn().Err(err).Str("receipt_id", receipt.ID).Msg("receipt not journaled")
	}
	s.cart = cart.New(s.inv)
}

func (s *Shell) viewAccount(ctx context.Context) {
	receipts, err := s.journal.List(ctx, s.account.Name())
	if err != nil {
		logx.Warn().Err(err).Str("customer", s.account.Name()).Msg("receipt journal unavailable")
		receipts = nil
	}
	writeAccount(s.out, s.account, receipts)
}

func (s *Shell) promptInt(prompt string) (int, error) {
	fmt.Fprint(s.out, prompt)
	line, ok := s.readLine()
	if !ok {
		return 0, errx.Newf(errx.KindInvalidInput, "no input")
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errx.Newf(errx.KindInvalidInput, "%q is not a whole number", line)
	}
	return n, nil
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) writeError(err error) {
	fmt.Fprintf(s.out, "Error: %s\n\n", errx.Message(err))
}

// NoticePrinter writes checkout notices to the shopper's console.
type NoticePrinter struct {
	Out io.Writer
}

// ExpiredRemoved prints the names of the lines dropped at checkout.
func (n NoticePrinter) ExpiredRemoved(_ context.Context, _ string, names []string) {
	fmt.Fprintf(n.Out, "Notice: expired items removed from cart -> [%s]\n", strings.Join(names, ", "))
}
