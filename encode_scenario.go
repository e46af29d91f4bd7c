package estate

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeCommand decodes a single command from its JSON object.
func DecodeCommand(data []byte) (Command, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify command in %q: %w", string(data), err)
	}

	var cmd Command
	var err error
	switch identifier.Command {
	case CmdStart:
		var c StartCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdOpenTrust:
		var c OpenTrustCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdBuy:
		// A buy line may only name a category: missing fields come from its preset.
		var temp struct {
			baseCmd
			Trust        string   `json:"trust"`
			Name         string   `json:"name"`
			Category     Category `json:"category"`
			Price        *Money   `json:"price"`
			LVR          *Percent `json:"lvr"`
			InterestRate *Percent `json:"rate"`
			GrowthRate   *Percent `json:"growth"`
			YieldRate    *Percent `json:"yield"`
			OtherCosts   *Money   `json:"otherCosts"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, err
		}
		p := temp.Category.Preset()
		p.Name = temp.Name
		p.Price = valueOr(temp.Price, p.Price)
		p.LVR = valueOr(temp.LVR, p.LVR)
		p.InterestRate = valueOr(temp.InterestRate, p.InterestRate)
		p.GrowthRate = valueOr(temp.GrowthRate, p.GrowthRate)
		p.YieldRate = valueOr(temp.YieldRate, p.YieldRate)
		p.OtherCosts = valueOr(temp.OtherCosts, p.OtherCosts)
		cmd = NewBuy(temp.Memo, temp.Trust, p)
	case CmdSell:
		var c SellCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdPayDown:
		var c PayDownCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdRefinance:
		var c RefinanceCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdAdvance:
		var c AdvanceCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdSettings:
		var c SettingsCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdTrustSettings:
		var c TrustSettingsCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	case CmdPropertySettings:
		var c PropertySettingsCmd
		err = json.Unmarshal(data, &c)
		cmd = c
	default:
		err = fmt.Errorf("unknown command: %q", identifier.Command)
	}
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// DecodeScenario decodes commands from a stream of JSONL data.
//
// Every malformed line is reported, with its line number.
func DecodeScenario(r io.Reader) (*Scenario, error) {
	sc := NewScenario()
	scanner := bufio.NewScanner(r)
	var errs []error
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		cmd, err := DecodeCommand(lineBytes)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		sc.Append(cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sc, nil
}

// EncodeCommand marshals a single command to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeCommand(w io.Writer, cmd Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal %s command: %w", cmd.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}
	return nil
}

// EncodeScenario writes all the commands of a scenario in JSONL format.
func EncodeScenario(w io.Writer, sc *Scenario) error {
	for _, cmd := range sc.All() {
		if err := EncodeCommand(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
