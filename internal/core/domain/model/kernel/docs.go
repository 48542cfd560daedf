// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, sub-orders, kitchens, funds and actors
//   - Amount: a non-negative sum of money in minor units (cents)
//   - Actor and Role: the already-authenticated caller of an operation
//
// All values are immutable and safe for concurrent use.
package kernel
