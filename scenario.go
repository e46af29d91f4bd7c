package estate

import (
	"fmt"
	"iter"
	"slices"
)

// Scenario is the ordered journal of the player's commands.
//
// Replaying a scenario from scratch always gives the same State: the
// simulation has no randomness and identifiers are derived from the order
// in which things are created.
type Scenario struct {
	commands []Command
}

// NewScenario creates an empty scenario.
func NewScenario() *Scenario {
	return &Scenario{commands: make([]Command, 0)}
}

// Append adds commands at the end of the scenario. They are not validated,
// see Replay.
func (sc *Scenario) Append(cmds ...Command) {
	sc.commands = append(sc.commands, cmds...)
}

// Len returns the number of commands.
func (sc *Scenario) Len() int { return len(sc.commands) }

// All iterates over the commands in order.
func (sc *Scenario) All() iter.Seq2[int, Command] {
	return slices.All(sc.commands)
}

// Replay applies all commands to an empty State and returns the final State.
//
// The first rejected command stops the replay: its error is returned with
// the State reached just before it.
func (sc *Scenario) Replay() (State, error) {
	return sc.ReplayN(len(sc.commands))
}

// ReplayN applies the first n commands.
func (sc *Scenario) ReplayN(n int) (State, error) {
	var s State
	for i, cmd := range sc.commands[:max(0, min(n, len(sc.commands)))] {
		next, err := cmd.Apply(s)
		if err != nil {
			return s, fmt.Errorf("command #%d %s: %w", i+1, cmd.What(), err)
		}
		s = next
	}
	return s, nil
}
