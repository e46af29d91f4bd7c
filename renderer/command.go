package renderer

import (
	"fmt"

	"github.com/etnz/estate"
)

// Command renders a command to a sentence.
func Command(cmd estate.Command) string {
	switch v := cmd.(type) {
	case estate.StartCmd:
		return fmt.Sprintf("Started with %v cash, a %v salary saving %v", v.Cash, v.Salary, v.SavingsRate)
	case estate.OpenTrustCmd:
		return "Opened a trust"
	case estate.BuyCmd:
		name := v.Name
		if name == "" {
			name = "a " + v.Category.String() + " property"
		}
		return fmt.Sprintf("Bought %s for %v at %v LVR in %s", name, v.Price, v.LVR, v.Trust)
	case estate.SellCmd:
		return fmt.Sprintf("Sold %s, taxed at %v", v.Property, v.TaxRate)
	case estate.PayDownCmd:
		return fmt.Sprintf("Paid down %v on %s", v.Amount, v.Property)
	case estate.RefinanceCmd:
		if v.Amount.IsZero() && v.TargetLVR > 0 {
			return fmt.Sprintf("Refinanced %s to %v LVR", v.Property, v.TargetLVR)
		}
		return fmt.Sprintf("Released %v from %s", v.Amount, v.Property)
	case estate.AdvanceCmd:
		if v.Quarters > 1 {
			return fmt.Sprintf("Advanced %d quarters", v.Quarters)
		}
		return "Advanced a quarter"
	case estate.SettingsCmd:
		return "Changed settings"
	case estate.TrustSettingsCmd:
		return fmt.Sprintf("Changed %s settings", v.Trust)
	case estate.PropertySettingsCmd:
		return fmt.Sprintf("Changed %s settings", v.Property)
	default:
		return string(cmd.What())
	}
}
