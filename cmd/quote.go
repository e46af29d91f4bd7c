package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate"
	"github.com/etnz/estate/renderer"
	"github.com/google/subcommands"
)

// --- Quote Buy Command ---

type quoteBuyCmd struct {
	purchaseFlags
}

func (*quoteBuyCmd) Name() string     { return "quote-buy" }
func (*quoteBuyCmd) Synopsis() string { return "preview the financing of a purchase" }
func (*quoteBuyCmd) Usage() string {
	return `esim quote-buy [-t <trust>] [-c <category>] [-price <amount>] [-lvr <percent>]

  Displays the loan, LMI, deposit and cash a purchase requires, without
  buying anything. Accepts the same flags as buy.
`
}

func (c *quoteBuyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	p, err := c.purchase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	ref, err := defaultTrust(s, c.Trust)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	t, err := s.ResolveTrust(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if p.Name == "" {
		p.Name = s.SuggestName(p.Category)
	}
	q, err := estate.QuotePurchase(t, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.PurchaseQuoteMarkdown(t, p, q, *currency))
	if _, err := estate.NewBuy("", ref, p).Apply(s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: this purchase would be rejected: %v\n", err)
	}
	return subcommands.ExitSuccess
}

// --- Quote Sale Command ---

type quoteSaleCmd struct {
	saleFlags
}

func (*quoteSaleCmd) Name() string     { return "quote-sale" }
func (*quoteSaleCmd) Synopsis() string { return "preview the proceeds and the tax of a sale" }
func (*quoteSaleCmd) Usage() string {
	return `esim quote-sale -p <property> [-t <trust>] [-tax <percent>] [-discount auto|yes|no]

  Displays the selling costs, capital gain, tax and net proceeds of selling
  a property at its current value, without selling it.
`
}

func (c *quoteSaleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	_, p, ok := c.resolve(s)
	if !ok {
		return subcommands.ExitFailure
	}
	sell := estate.NewSell("", c.Trust, c.Property, estate.Percent(c.TaxRate), c.discount())
	discount := sell.ApplyDiscount(p, s)
	q := estate.QuoteSale(p, sell.TaxRate, discount)
	printMarkdown(renderer.SaleQuoteMarkdown(p, q, discount, *currency))
	return subcommands.ExitSuccess
}

// --- Quote Refinance Command ---

type quoteRefinanceCmd struct {
	refinanceFlags
}

func (*quoteRefinanceCmd) Name() string     { return "quote-refinance" }
func (*quoteRefinanceCmd) Synopsis() string { return "preview an equity release" }
func (*quoteRefinanceCmd) Usage() string {
	return `esim quote-refinance -p <property> (-a <amount> | -target-lvr <percent>) [-t <trust>]

  Displays how much equity can be released from a property, and the loan,
  LMI and LVR after releasing the requested amount.
`
}

func (c *quoteRefinanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	cmd, err := c.command("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	t, p, ok := c.resolve(s)
	if !ok {
		return subcommands.ExitFailure
	}
	q, err := estate.QuoteRefinance(t, p, cmd.CashOut(t, p))
	printMarkdown(renderer.RefinanceQuoteMarkdown(p, q, *currency))
	if errors.Is(err, estate.ErrExcessiveRisk) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if q.CashOut.GreaterThan(q.MaxReleasable) {
		fmt.Fprintf(os.Stderr, "Warning: at most %s can be released\n", q.MaxReleasable.Format(*currency))
	}
	return subcommands.ExitSuccess
}
