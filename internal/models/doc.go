// Package models defines the core domain entities for Splitpot.
//
// The ledger is built from three stored entities:
//   - Person: a participant whose balance is tracked
//   - Expense: a shared cost paid by one person and split among several
//   - Settlement: a recorded repayment between two people
//
// User is a login account and is deliberately separate from Person:
// accounts authenticate against the API, while people are the names the
// ledger tracks balances for. A household can share one account and
// still split between five people.
//
// Derived figures (net balances, transfer plans) are computed by the
// ledger package and never stored.
//
// # Design Principles
//
//  1. Amounts are float64 in a single implicit currency, rounded to
//     cents. Comparisons use MoneyEpsilon to absorb the rounding that
//     equal and percentage splits introduce.
//  2. Relationships use ID strings instead of pointers to avoid
//     circular references.
//  3. Each entity validates itself; storage and transport layers can
//     assume a validated value.
package models
