// Package suborder implements the work unit of the fulfillment domain: the
// portion of an order prepared by a single kitchen.
//
// The package includes:
//   - SubOrder: the aggregate with its items, lifecycle timestamps and version counter
//   - Status: the lifecycle state machine and its transition table
//   - Item: one ordered menu line with quantity and unit price
//
// Lifecycle:
//
//	Created ──> Pending ──> InPreparation ──> Ready ──> Delivered
//	   │           │              │
//	   └───────────┴──────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. Requesting the current status again is
// a no-op, never an error.
package suborder
