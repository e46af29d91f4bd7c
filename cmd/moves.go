package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/estate"
	"github.com/google/subcommands"
)

// --- Open Trust Command ---

type openTrustCmd struct {
	memo string
}

func (*openTrustCmd) Name() string     { return "open-trust" }
func (*openTrustCmd) Synopsis() string { return "open a new trust for a fee" }
func (*openTrustCmd) Usage() string {
	return `esim open-trust [-m <memo>]

  Opens a new trust. The setup fee is debited from cash and the trust gets
  the current borrowing capacity.
`
}

func (c *openTrustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *openTrustCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewOpenTrust(c.memo))
}

// --- Buy Command ---

// purchaseFlags are the flags describing a purchase, shared by buy and quote-buy.
type purchaseFlags struct {
	Trust        string `flag:"t"`
	Category     string `flag:"c" validate:"oneof=residential-growth residential-cashflow commercial"`
	Name         string `flag:"n"`
	Price        string `flag:"price"`
	LVR          string `flag:"lvr"`
	InterestRate string `flag:"rate"`
	GrowthRate   string `flag:"growth"`
	YieldRate    string `flag:"yield"`
	OtherCosts   string `flag:"costs"`
}

func (c *purchaseFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Trust, "t", "", "Trust buying the property. Defaults to the only trust.")
	f.StringVar(&c.Category, "c", estate.ResidentialGrowth.String(), "Category: residential-growth, residential-cashflow or commercial")
	f.StringVar(&c.Name, "n", "", "Property name. Defaults to IP <n> or Commercial <n>.")
	f.StringVar(&c.Price, "price", "", "Purchase price. Defaults to the category preset.")
	f.StringVar(&c.LVR, "lvr", "", "Share of the price borrowed, in percent")
	f.StringVar(&c.InterestRate, "rate", "", "Yearly interest rate, in percent")
	f.StringVar(&c.GrowthRate, "growth", "", "Yearly capital growth, in percent")
	f.StringVar(&c.YieldRate, "yield", "", "Yearly rental yield, in percent")
	f.StringVar(&c.OtherCosts, "costs", "", "Stamp duty and fees paid in cash")
}

// purchase returns the category preset overridden by the flags.
func (c *purchaseFlags) purchase() (estate.Purchase, error) {
	category, err := estate.ParseCategory(c.Category)
	if err != nil {
		return estate.Purchase{}, err
	}
	p := category.Preset()
	p.Name = c.Name
	amounts := []struct {
		name, text string
		target     *estate.Money
	}{
		{"price", c.Price, &p.Price},
		{"costs", c.OtherCosts, &p.OtherCosts},
	}
	for _, a := range amounts {
		m, err := optionalAmount(a.name, a.text)
		if err != nil {
			return p, err
		}
		if m != nil {
			*a.target = *m
		}
	}
	percents := []struct {
		name, text string
		target     *estate.Percent
	}{
		{"lvr", c.LVR, &p.LVR},
		{"rate", c.InterestRate, &p.InterestRate},
		{"growth", c.GrowthRate, &p.GrowthRate},
		{"yield", c.YieldRate, &p.YieldRate},
	}
	for _, r := range percents {
		v, err := optionalPercent(r.name, r.text)
		if err != nil {
			return p, err
		}
		if v != nil {
			*r.target = *v
		}
	}
	return p, nil
}

type buyCmd struct {
	purchaseFlags
	memo string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a property into a trust" }
func (*buyCmd) Usage() string {
	return `esim buy [-t <trust>] [-c <category>] [-n <name>] [-price <amount>] [-lvr <percent>] [-m <memo>]

  Buys a property. The deposit and the other costs are paid in cash, the
  loan (LMI included) counts against the trust borrowing capacity.
  Missing values are taken from the category preset.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.purchaseFlags.SetFlags(f)
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	trust, err := defaultTrust(s, c.Trust)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendCommand(s, estate.NewBuy(c.memo, trust, p))
}

// --- Sell Command ---

// propertyFlags designate a property.
type propertyFlags struct {
	Property string `flag:"p" validate:"required"`
	Trust    string `flag:"t"`
}

func (c *propertyFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Property, "p", "", "Property name or id")
	f.StringVar(&c.Trust, "t", "", "Trust holding the property, when the name is not unique")
}

// resolve finds the property in s.
func (c *propertyFlags) resolve(s estate.State) (estate.Trust, estate.Property, bool) {
	t, p, err := s.ResolveProperty(c.Trust, c.Property)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return t, p, false
	}
	return t, p, true
}

type saleFlags struct {
	propertyFlags
	TaxRate  float64 `flag:"tax" validate:"min=0,max=100"`
	Discount string  `flag:"discount" validate:"oneof=auto yes no"`
}

func (c *saleFlags) SetFlags(f *flag.FlagSet) {
	c.propertyFlags.SetFlags(f)
	f.Float64Var(&c.TaxRate, "tax", 30, "Marginal tax rate applied to the taxable gain, in percent")
	f.StringVar(&c.Discount, "discount", "auto", "CGT discount: auto (held a year or more), yes or no")
}

// discount returns the explicit discount choice, nil for auto.
func (c *saleFlags) discount() *bool {
	switch c.Discount {
	case "yes":
		v := true
		return &v
	case "no":
		v := false
		return &v
	}
	return nil
}

type sellCmd struct {
	saleFlags
	memo string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a property and pay its loan off" }
func (*sellCmd) Usage() string {
	return `esim sell -p <property> [-t <trust>] [-tax <percent>] [-discount auto|yes|no] [-m <memo>]

  Sells a property at its current value. Selling costs, the loan and the
  capital gains tax are paid from the proceeds.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.saleFlags.SetFlags(f)
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewSell(c.memo, c.Trust, c.Property, estate.Percent(c.TaxRate), c.discount()))
}

// --- Pay Down Command ---

type payDownCmd struct {
	propertyFlags
	Amount string `flag:"a" validate:"required"`
	memo   string
}

func (*payDownCmd) Name() string     { return "pay-down" }
func (*payDownCmd) Synopsis() string { return "repay part of a property loan from cash" }
func (*payDownCmd) Usage() string {
	return `esim pay-down -p <property> -a <amount> [-t <trust>] [-m <memo>]

  Repays part of a property loan. The amount is debited from cash.
`
}

func (c *payDownCmd) SetFlags(f *flag.FlagSet) {
	c.propertyFlags.SetFlags(f)
	f.StringVar(&c.Amount, "a", "", "Amount to repay")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *payDownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	amount, err := estate.ParseAmount(c.Amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -a: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewPayDown(c.memo, c.Trust, c.Property, amount))
}

// --- Refinance Command ---

type refinanceFlags struct {
	propertyFlags
	Amount    string  `flag:"a" validate:"required_without=TargetLVR,excluded_with=TargetLVR"`
	TargetLVR float64 `flag:"target-lvr" validate:"omitempty,gt=0,lte=100"`
}

func (c *refinanceFlags) SetFlags(f *flag.FlagSet) {
	c.propertyFlags.SetFlags(f)
	f.StringVar(&c.Amount, "a", "", "Cash to release")
	f.Float64Var(&c.TargetLVR, "target-lvr", 0, "Release as much as needed to reach this LVR, in percent")
}

// command returns the refinance command the flags describe.
func (c *refinanceFlags) command(memo string) (estate.RefinanceCmd, error) {
	amount, err := optionalAmount("a", c.Amount)
	if err != nil {
		return estate.RefinanceCmd{}, err
	}
	if amount == nil {
		amount = new(estate.Money)
	}
	return estate.NewRefinance(memo, c.Trust, c.Property, *amount, estate.Percent(c.TargetLVR)), nil
}

type refinanceCmd struct {
	refinanceFlags
	memo string
}

func (*refinanceCmd) Name() string     { return "refinance" }
func (*refinanceCmd) Synopsis() string { return "release equity from a property into cash" }
func (*refinanceCmd) Usage() string {
	return `esim refinance -p <property> (-a <amount> | -target-lvr <percent>) [-t <trust>] [-m <memo>]

  Increases a property loan to release cash. The release is limited by the
  usable equity (up to 88% LVR) and by the trust borrowing capacity. LMI is
  added to the loan above 80% LVR.
`
}

func (c *refinanceCmd) SetFlags(f *flag.FlagSet) {
	c.refinanceFlags.SetFlags(f)
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *refinanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	cmd, err := c.command(c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, cmd)
}

// --- Advance Command ---

type advanceCmd struct {
	Quarters int `flag:"q" validate:"min=1,max=400"`
	memo     string
}

func (*advanceCmd) Name() string     { return "advance" }
func (*advanceCmd) Synopsis() string { return "move time forward by quarters" }
func (*advanceCmd) Usage() string {
	return `esim advance [-q <quarters>] [-m <memo>]

  Moves the simulation forward. Every quarter rents are collected, expenses
  and interest are paid, properties grow and savings are added to cash.
`
}

func (c *advanceCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.Quarters, "q", 1, "Number of quarters")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *advanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !checkFlags(f, c) {
		return subcommands.ExitUsageError
	}
	s, ok := loadState()
	if !ok {
		return subcommands.ExitFailure
	}
	return appendCommand(s, estate.NewAdvance(c.memo, c.Quarters))
}
