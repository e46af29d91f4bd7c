// Package estate is the engine of a property investment simulator.
//
// A player starts with a salary, savings and some cash. They open trusts,
// borrowing containers with a debt cap, and buy income producing properties
// into them. Time moves forward one quarter at a time: rents are collected,
// interest and expenses are paid, values grow and savings accumulate.
//
// The core functionalities include:
//   - State: a value holding cash, trusts, properties and the net worth
//     history. Engine functions never modify a State, they return a new one.
//   - Transactions: OpenTrust, BuyProperty, SellProperty, PayDownLoan and
//     Refinance, enforcing LVR, LMI, borrowing capacity and CGT rules.
//   - Quotes: previews of every transaction, computed by the very same rules.
//   - Scenario: the JSONL journal of the player's commands. Replaying it gives
//     back the same State, identifiers included.
//
// This package serves as the foundational logic for the `esim` command-line
// tool.
package estate
