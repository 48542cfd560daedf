// Package errs provides the typed errors shared by the fulfillment service.
//
// Generic validation errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError
//
// Fulfillment errors, each distinguishable with errors.Is against its sentinel:
//   - InvalidTransitionError: the transition table forbids the move
//   - PermissionDeniedError: the actor's roles do not allow the action
//   - ConcurrentModificationError: a row version changed under the caller
//   - InsufficientBalanceError, FundClosedError: prepaid ledger rules
//   - NoCapableResourceError: no active kitchen can prepare the items
//   - SerializationFailureError: the database aborted a strict transaction
//
// Each error type follows the same shape: a sentinel variable, a struct with the
// details, New... constructors, Error() and Unwrap() returning the sentinel.
package errs
