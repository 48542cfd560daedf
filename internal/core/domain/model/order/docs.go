// Package order provides the Order aggregate root of the fulfillment domain.
//
// The package includes:
//   - Order: identity, human-readable number, payment mode, total and the
//     ordered list of sub-order ids
//   - Status: the aggregate status, derived from the sub-orders
//   - PaymentMode: Prepaid (debited at creation) or Deferred (settled later)
//
// Key business rules:
//   - The order status is never set directly; it only changes through
//     ApplyAggregatedStatus with a value computed from the sub-orders
//   - The total is the sum of the sub-order totals
//   - Orders are never deleted, only terminalized (Finalized or Cancelled)
package order
