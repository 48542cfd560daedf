// Package fund implements the prepaid ledger aggregate.
//
// The package includes:
//   - Fund: a client's spendable balance with a version counter
//   - Movement: an immutable record of one balance change carrying the
//     balance before and after
//   - MovementKind: Credit, Debit or Refund
//
// Key business rules:
//   - The balance is never negative
//   - A closed fund accepts no movement
//   - At most one Debit and one Refund exist per order; the store enforces
//     it with a unique (order_id, kind) index
package fund
