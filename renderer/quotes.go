package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// amountTable builds a two columns table of labelled amounts.
func amountTable(currency string, lines ...any) md.TableSet {
	table := md.TableSet{Header: []string{"Item", "Amount"}, Rows: [][]string{}}
	for i := 0; i+1 < len(lines); i += 2 {
		var value string
		switch v := lines[i+1].(type) {
		case estate.Money:
			value = v.Format(currency)
		case estate.Percent:
			value = v.String()
		default:
			value = fmt.Sprint(v)
		}
		table.Rows = append(table.Rows, []string{fmt.Sprint(lines[i]), value})
	}
	return table
}

// PurchaseQuoteMarkdown renders the financing of a purchase.
func PurchaseQuoteMarkdown(t estate.Trust, p estate.Purchase, q estate.PurchaseQuote, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Buying a %s property in %s", p.Category, t.Name))
	doc.Table(amountTable(currency,
		"Price", p.Price,
		"LVR", p.LVR,
		"Loan", q.Loan,
		"LMI", q.LMI,
		"Total loan", q.TotalLoan,
		"Deposit", q.Deposit,
		"Other costs", p.OtherCosts,
		"Cash required", q.CashRequired,
		"Trust debt after", q.TrustDebt,
		"Trust capacity", t.MaxBorrowing,
	))
	if !q.LMI.IsZero() {
		doc.PlainText(fmt.Sprintf("The LVR is above %v, LMI is added to the loan.", estate.LMIThreshold))
	}
	return doc.String()
}

// SaleQuoteMarkdown renders the proceeds of selling a property.
func SaleQuoteMarkdown(p estate.Property, q estate.SaleQuote, discount bool, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Selling %s", p.Name))
	doc.Table(amountTable(currency,
		"Sale price", q.SalePrice,
		"Selling costs", q.SellingCosts,
		"Original price", p.OriginalPrice,
		"Capital gain", q.CapitalGain,
		"Taxable amount", q.TaxableAmount,
		"Tax", q.Tax,
		"Loan payout", q.LoanPayout,
		"Net proceeds", q.NetProceeds,
	))
	if discount {
		doc.PlainText(fmt.Sprintf("The %v CGT discount applies.", estate.CGTDiscount))
	} else {
		doc.PlainText("The CGT discount does not apply.")
	}
	return doc.String()
}

// RefinanceQuoteMarkdown renders an equity release.
func RefinanceQuoteMarkdown(p estate.Property, q estate.RefinanceQuote, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Refinancing %s", p.Name))
	doc.Table(amountTable(currency,
		"Value", p.Value,
		"Current loan", p.Loan,
		"Maximum loan", q.MaxLoan,
		"Available equity", q.AvailableEquity,
		"Trust headroom", q.TrustHeadroom,
		"Maximum release", q.MaxReleasable,
		"Cash out", q.CashOut,
		"LMI", q.LMI,
		"New loan", q.NewLoan,
		"New LVR", q.NewLVR,
	))
	return doc.String()
}
