// Package bankbook implements a single-user personal bank book: a small set
// of multi-currency accounts persisted as one JSON document, every movement
// recorded as an immutable transaction.
//
// The Ledger owns the account collection and enforces the rules: balance and
// threshold checks, atomic cross-currency transfers, compound-interest loans,
// and a USD mirror of every balance kept in sync through a fixed rate table.
// The Guard layers PIN, one-time-code and security-question checks on top.
// Persistence goes through the Store interface, so the ledger itself never
// touches the filesystem.
package bankbook
