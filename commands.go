package estate

import (
	"errors"
	"fmt"
)

// CommandType is a typed string for identifying commands.
type CommandType string

// Command types used in scenario files.
const (
	CmdStart            CommandType = "start"
	CmdOpenTrust        CommandType = "open-trust"
	CmdBuy              CommandType = "buy"
	CmdSell             CommandType = "sell"
	CmdPayDown          CommandType = "pay-down"
	CmdRefinance        CommandType = "refinance"
	CmdAdvance          CommandType = "advance"
	CmdSettings         CommandType = "settings"
	CmdTrustSettings    CommandType = "trust-settings"
	CmdPropertySettings CommandType = "property-settings"
)

// Command is a player decision that can be recorded in a scenario and
// replayed. Trusts and properties are referenced by id or by name.
type Command interface {
	What() CommandType // What returns the command type (e.g., "buy", "sell").
	Apply(State) (State, error)
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of command (e.g., "buy", "sell").
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale for the decision.
}

// What returns the command name, which is used to identify the type of command.
func (c baseCmd) What() CommandType { return c.Command }

// Rationale returns the memo associated with the command.
func (c baseCmd) Rationale() string { return c.Memo }

// write appends the base fields to w.
func (c baseCmd) write(w *jsonObjectWriter) {
	w.Append("command", c.Command)
	w.Optional("memo", c.Memo)
}

// started rejects commands before the simulation has been set up.
func started(s State) error {
	if !s.SetupComplete {
		return fmt.Errorf("%w: the first command must be %q", ErrNotStarted, CmdStart)
	}
	return nil
}

// StartCmd sets up the simulation. It must be the first command of a scenario.
type StartCmd struct {
	baseCmd
	Salary       Money   `json:"salary"`
	SavingsRate  Percent `json:"savingsRate"`
	Cash         Money   `json:"cash"`
	MaxBorrowing Money   `json:"maxBorrowing"`
}

// NewStart creates a new StartCmd.
func NewStart(memo string, salary Money, savingsRate Percent, cash, maxBorrowing Money) StartCmd {
	return StartCmd{
		baseCmd:      baseCmd{Command: CmdStart, Memo: memo},
		Salary:       salary,
		SavingsRate:  savingsRate,
		Cash:         cash,
		MaxBorrowing: maxBorrowing,
	}
}

func (c StartCmd) Apply(s State) (State, error) {
	if s.SetupComplete {
		return s, errors.New("simulation already started")
	}
	return StartSimulation(c.Salary, c.SavingsRate, c.Cash, c.MaxBorrowing), nil
}

func (c StartCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	w.Amount("salary", c.Salary)
	w.Append("savingsRate", c.SavingsRate)
	w.Amount("cash", c.Cash)
	w.Amount("maxBorrowing", c.MaxBorrowing)
	return w.MarshalJSON()
}

// OpenTrustCmd opens a new trust.
type OpenTrustCmd struct {
	baseCmd
}

// NewOpenTrust creates a new OpenTrustCmd.
func NewOpenTrust(memo string) OpenTrustCmd {
	return OpenTrustCmd{baseCmd: baseCmd{Command: CmdOpenTrust, Memo: memo}}
}

func (c OpenTrustCmd) Apply(s State) (State, error) {
	if err := started(s); err != nil {
		return s, err
	}
	return OpenTrust(s)
}

func (c OpenTrustCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	return w.MarshalJSON()
}

// BuyCmd buys a property into a trust.
type BuyCmd struct {
	baseCmd
	Trust        string   `json:"trust"`
	Name         string   `json:"name,omitempty"`
	Category     Category `json:"category"`
	Price        Money    `json:"price"`
	LVR          Percent  `json:"lvr"`
	InterestRate Percent  `json:"rate"`
	GrowthRate   Percent  `json:"growth"`
	YieldRate    Percent  `json:"yield"`
	OtherCosts   Money    `json:"otherCosts"`
}

// NewBuy creates a new BuyCmd.
func NewBuy(memo, trust string, p Purchase) BuyCmd {
	return BuyCmd{
		baseCmd:      baseCmd{Command: CmdBuy, Memo: memo},
		Trust:        trust,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		LVR:          p.LVR,
		InterestRate: p.InterestRate,
		GrowthRate:   p.GrowthRate,
		YieldRate:    p.YieldRate,
		OtherCosts:   p.OtherCosts,
	}
}

// Purchase returns the purchase requested by the command.
func (c BuyCmd) Purchase() Purchase {
	return Purchase{
		PropertyParams: PropertyParams{
			Name:         c.Name,
			Category:     c.Category,
			Price:        c.Price,
			InterestRate: c.InterestRate,
			GrowthRate:   c.GrowthRate,
			YieldRate:    c.YieldRate,
		},
		LVR:        c.LVR,
		OtherCosts: c.OtherCosts,
	}
}

func (c BuyCmd) Apply(s State) (State, error) {
	if err := started(s); err != nil {
		return s, err
	}
	t, err := s.ResolveTrust(c.Trust)
	if err != nil {
		return s, err
	}
	p := c.Purchase()
	return BuyProperty(s, t.ID, p.PropertyParams, p.LVR, p.OtherCosts)
}

func (c BuyCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	w.Append("trust", c.Trust)
	w.Optional("name", c.Name)
	w.Append("category", c.Category)
	w.Amount("price", c.Price)
	w.Append("lvr", c.LVR)
	w.Append("rate", c.InterestRate)
	w.Append("growth", c.GrowthRate)
	w.Append("yield", c.YieldRate)
	w.Amount("otherCosts", c.OtherCosts)
	return w.MarshalJSON()
}

// propertyRef is a component for commands acting on a property.
type propertyRef struct {
	Trust    string `json:"trust,omitempty"` // Trust is optional when the property reference is unique.
	Property string `json:"property"`
}

func (r propertyRef) write(w *jsonObjectWriter) {
	w.Optional("trust", r.Trust)
	w.Append("property", r.Property)
}

func (r propertyRef) resolve(s State) (Trust, Property, error) {
	if err := started(s); err != nil {
		return Trust{}, Property{}, err
	}
	return s.ResolveProperty(r.Trust, r.Property)
}

// SellCmd sells a property.
type SellCmd struct {
	baseCmd
	propertyRef
	TaxRate  Percent `json:"taxRate"`
	Discount *bool   `json:"discount,omitempty"` // Discount defaults to the property being held for a year.
}

// NewSell creates a new SellCmd. A nil discount lets the holding period decide.
func NewSell(memo, trust, property string, taxRate Percent, discount *bool) SellCmd {
	return SellCmd{
		baseCmd:     baseCmd{Command: CmdSell, Memo: memo},
		propertyRef: propertyRef{Trust: trust, Property: property},
		TaxRate:     taxRate,
		Discount:    discount,
	}
}

// ApplyDiscount tells whether the CGT discount applies to selling p in s.
func (c SellCmd) ApplyDiscount(p Property, s State) bool {
	if c.Discount != nil {
		return *c.Discount
	}
	return p.DiscountEligible(s.Now)
}

func (c SellCmd) Apply(s State) (State, error) {
	t, p, err := c.resolve(s)
	if err != nil {
		return s, err
	}
	return SellProperty(s, t.ID, p.ID, c.TaxRate, c.ApplyDiscount(p, s))
}

func (c SellCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	c.propertyRef.write(&w)
	w.Append("taxRate", c.TaxRate)
	if c.Discount != nil {
		w.Append("discount", *c.Discount)
	}
	return w.MarshalJSON()
}

// PayDownCmd repays part of a loan.
type PayDownCmd struct {
	baseCmd
	propertyRef
	Amount Money `json:"amount"`
}

// NewPayDown creates a new PayDownCmd.
func NewPayDown(memo, trust, property string, amount Money) PayDownCmd {
	return PayDownCmd{
		baseCmd:     baseCmd{Command: CmdPayDown, Memo: memo},
		propertyRef: propertyRef{Trust: trust, Property: property},
		Amount:      amount,
	}
}

func (c PayDownCmd) Apply(s State) (State, error) {
	t, p, err := c.resolve(s)
	if err != nil {
		return s, err
	}
	return PayDownLoan(s, t.ID, p.ID, c.Amount)
}

func (c PayDownCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	c.propertyRef.write(&w)
	w.Amount("amount", c.Amount)
	return w.MarshalJSON()
}

// RefinanceCmd releases equity from a property, either a fixed amount or
// whatever brings the loan to a target LVR.
type RefinanceCmd struct {
	baseCmd
	propertyRef
	Amount    Money   `json:"amount"`
	TargetLVR Percent `json:"targetLvr,omitempty"` // TargetLVR is used when Amount is zero.
}

// NewRefinance creates a new RefinanceCmd.
func NewRefinance(memo, trust, property string, amount Money, targetLVR Percent) RefinanceCmd {
	return RefinanceCmd{
		baseCmd:     baseCmd{Command: CmdRefinance, Memo: memo},
		propertyRef: propertyRef{Trust: trust, Property: property},
		Amount:      amount,
		TargetLVR:   targetLVR,
	}
}

// CashOut returns the amount to release from p in trust t.
func (c RefinanceCmd) CashOut(t Trust, p Property) Money {
	if c.Amount.IsZero() && c.TargetLVR > 0 {
		return ReleaseForTargetLVR(t, p, c.TargetLVR)
	}
	return c.Amount
}

func (c RefinanceCmd) Apply(s State) (State, error) {
	t, p, err := c.resolve(s)
	if err != nil {
		return s, err
	}
	return Refinance(s, t.ID, p.ID, c.CashOut(t, p))
}

func (c RefinanceCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	c.propertyRef.write(&w)
	if !c.Amount.IsZero() || c.TargetLVR == 0 {
		w.Amount("amount", c.Amount)
	}
	w.Optional("targetLvr", c.TargetLVR)
	return w.MarshalJSON()
}

// AdvanceCmd moves time forward by a number of quarters.
type AdvanceCmd struct {
	baseCmd
	Quarters int `json:"quarters,omitempty"` // Quarters defaults to 1.
}

// NewAdvance creates a new AdvanceCmd.
func NewAdvance(memo string, quarters int) AdvanceCmd {
	return AdvanceCmd{baseCmd: baseCmd{Command: CmdAdvance, Memo: memo}, Quarters: quarters}
}

func (c AdvanceCmd) Apply(s State) (State, error) {
	if err := started(s); err != nil {
		return s, err
	}
	n := max(c.Quarters, 1)
	for range n {
		s = AdvanceQuarter(s)
	}
	return s, nil
}

func (c AdvanceCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	if c.Quarters > 1 {
		w.Append("quarters", c.Quarters)
	}
	return w.MarshalJSON()
}

// SettingsCmd changes the global settings.
type SettingsCmd struct {
	baseCmd
	Salary       *Money   `json:"salary,omitempty"`
	SavingsRate  *Percent `json:"savingsRate,omitempty"`
	MaxBorrowing *Money   `json:"maxBorrowing,omitempty"`
}

// NewSettings creates a new SettingsCmd.
func NewSettings(memo string, g GlobalSettings) SettingsCmd {
	return SettingsCmd{
		baseCmd:      baseCmd{Command: CmdSettings, Memo: memo},
		Salary:       g.Salary,
		SavingsRate:  g.SavingsRate,
		MaxBorrowing: g.MaxBorrowingPerTrust,
	}
}

func (c SettingsCmd) Apply(s State) (State, error) {
	if err := started(s); err != nil {
		return s, err
	}
	return UpdateGlobalSettings(s, GlobalSettings{Salary: c.Salary, SavingsRate: c.SavingsRate, MaxBorrowingPerTrust: c.MaxBorrowing}), nil
}

func (c SettingsCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	w.OptionalAmount("salary", c.Salary)
	w.OptionalPercent("savingsRate", c.SavingsRate)
	w.OptionalAmount("maxBorrowing", c.MaxBorrowing)
	return w.MarshalJSON()
}

// TrustSettingsCmd changes a trust's settings.
type TrustSettingsCmd struct {
	baseCmd
	Trust        string  `json:"trust"`
	Name         *string `json:"name,omitempty"`
	MaxBorrowing *Money  `json:"maxBorrowing,omitempty"`
}

// NewTrustSettings creates a new TrustSettingsCmd.
func NewTrustSettings(memo, trust string, ts TrustSettings) TrustSettingsCmd {
	return TrustSettingsCmd{
		baseCmd:      baseCmd{Command: CmdTrustSettings, Memo: memo},
		Trust:        trust,
		Name:         ts.Name,
		MaxBorrowing: ts.MaxBorrowing,
	}
}

func (c TrustSettingsCmd) Apply(s State) (State, error) {
	if err := started(s); err != nil {
		return s, err
	}
	t, err := s.ResolveTrust(c.Trust)
	if err != nil {
		return s, err
	}
	return UpdateTrustSettings(s, t.ID, TrustSettings{Name: c.Name, MaxBorrowing: c.MaxBorrowing})
}

func (c TrustSettingsCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	w.Append("trust", c.Trust)
	if c.Name != nil {
		w.Append("name", *c.Name)
	}
	w.OptionalAmount("maxBorrowing", c.MaxBorrowing)
	return w.MarshalJSON()
}

// PropertySettingsCmd changes a property's market assumptions.
type PropertySettingsCmd struct {
	baseCmd
	propertyRef
	Name         *string  `json:"name,omitempty"`
	InterestRate *Percent `json:"rate,omitempty"`
	GrowthRate   *Percent `json:"growth,omitempty"`
	YieldRate    *Percent `json:"yield,omitempty"`
}

// NewPropertySettings creates a new PropertySettingsCmd.
func NewPropertySettings(memo, trust, property string, ps PropertySettings) PropertySettingsCmd {
	return PropertySettingsCmd{
		baseCmd:      baseCmd{Command: CmdPropertySettings, Memo: memo},
		propertyRef:  propertyRef{Trust: trust, Property: property},
		Name:         ps.Name,
		InterestRate: ps.InterestRate,
		GrowthRate:   ps.GrowthRate,
		YieldRate:    ps.YieldRate,
	}
}

func (c PropertySettingsCmd) Apply(s State) (State, error) {
	t, p, err := c.resolve(s)
	if err != nil {
		return s, err
	}
	return UpdatePropertySettings(s, t.ID, p.ID, PropertySettings{
		Name:         c.Name,
		InterestRate: c.InterestRate,
		GrowthRate:   c.GrowthRate,
		YieldRate:    c.YieldRate,
	})
}

func (c PropertySettingsCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	c.baseCmd.write(&w)
	c.propertyRef.write(&w)
	if c.Name != nil {
		w.Append("name", *c.Name)
	}
	w.OptionalPercent("rate", c.InterestRate)
	w.OptionalPercent("growth", c.GrowthRate)
	w.OptionalPercent("yield", c.YieldRate)
	return w.MarshalJSON()
}
