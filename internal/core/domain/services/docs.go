// Package services provides domain services that orchestrate business rules
// spanning several aggregates of the fulfillment domain.
//
// The package includes:
//   - KitchenRouter: picks the kitchen that prepares a menu category
//   - SubOrderPlanner: splits an order into one sub-order per kitchen
//   - TransitionPolicy: maps sub-order actions to the roles allowed to perform them
//   - AggregateOrderStatus: derives an order status from its sub-orders
//   - DeferredPaymentPolicy: gates orders that are not paid upfront
//
// Services are stateless and never touch storage; application handlers load
// the aggregates and pass them in.
package services
