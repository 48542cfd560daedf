package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrFundClosed             = errors.New("fund is closed")
	ErrNoCapableResource      = errors.New("no capable resource")
	ErrSerializationFailure   = errors.New("serialization failure")
	ErrAlreadyExists          = errors.New("already exists")
	ErrDeferredPaymentDenied  = errors.New("deferred payment not allowed")
)

// InvalidTransitionError reports a status change the transition table forbids.
// Not retryable as-is: the caller has to pick a legal target.
type InvalidTransitionError struct {
	Subject string
	From    string
	To      string
}

func NewInvalidTransitionError(subject, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Subject: subject,
		From:    from,
		To:      to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Subject, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PermissionDeniedError reports an actor whose roles do not allow an action.
type PermissionDeniedError struct {
	ActorID  string
	Action   string
	Required []string
}

func NewPermissionDeniedError(actorID, action string, required ...string) *PermissionDeniedError {
	return &PermissionDeniedError{
		ActorID:  actorID,
		Action:   action,
		Required: required,
	}
}

func (e *PermissionDeniedError) Error() string {
	if len(e.Required) == 0 {
		return fmt.Sprintf("%s: actor %s may not %s", ErrPermissionDenied, e.ActorID, e.Action)
	}
	return fmt.Sprintf("%s: actor %s may not %s (requires one of: %s)",
		ErrPermissionDenied, e.ActorID, e.Action, strings.Join(e.Required, ", "))
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// ConcurrentModificationError reports a lost optimistic race. The caller
// reloads and retries, or surfaces the conflict.
type ConcurrentModificationError struct {
	Entity  string
	ID      string
	Version int
}

func NewConcurrentModificationError(entity, id string, version int) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		Entity:  entity,
		ID:      id,
		Version: version,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s changed since version %d", ErrConcurrentModification, e.Entity, e.ID, e.Version)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// InsufficientBalanceError reports a debit larger than the fund balance.
type InsufficientBalanceError struct {
	FundID    string
	Balance   int64
	Requested int64
}

func NewInsufficientBalanceError(fundID string, balance, requested int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{
		FundID:    fundID,
		Balance:   balance,
		Requested: requested,
	}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: fund %s holds %d, requested %d", ErrInsufficientBalance, e.FundID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// FundClosedError reports a movement against a deactivated fund.
type FundClosedError struct {
	FundID string
}

func NewFundClosedError(fundID string) *FundClosedError {
	return &FundClosedError{FundID: fundID}
}

func (e *FundClosedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFundClosed, e.FundID)
}

func (e *FundClosedError) Unwrap() error {
	return ErrFundClosed
}

// NoCapableResourceError reports that no active kitchen of the required type exists.
type NoCapableResourceError struct {
	ResourceType string
	ServingUnit  string
}

func NewNoCapableResourceError(resourceType, servingUnit string) *NoCapableResourceError {
	return &NoCapableResourceError{
		ResourceType: resourceType,
		ServingUnit:  servingUnit,
	}
}

func (e *NoCapableResourceError) Error() string {
	return fmt.Sprintf("%s: no active %s kitchen for serving unit %s", ErrNoCapableResource, e.ResourceType, e.ServingUnit)
}

func (e *NoCapableResourceError) Unwrap() error {
	return ErrNoCapableResource
}

// SerializationFailureError wraps a database abort caused by strict isolation.
// Retryable a bounded number of times.
type SerializationFailureError struct {
	Cause error
}

func NewSerializationFailureError(cause error) *SerializationFailureError {
	return &SerializationFailureError{Cause: cause}
}

func (e *SerializationFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", ErrSerializationFailure, e.Cause)
	}
	return ErrSerializationFailure.Error()
}

func (e *SerializationFailureError) Unwrap() error {
	return ErrSerializationFailure
}

// AlreadyExistsError reports a unique key collision, e.g. a second debit
// for the same order written by a concurrent request.
type AlreadyExistsError struct {
	Entity string
	Key    string
}

func NewAlreadyExistsError(entity, key string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Entity: entity,
		Key:    key,
	}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAlreadyExists, e.Entity, e.Key)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// DeferredPaymentNotAllowedError reports a deferred order refused by the
// feature flag (Ceiling < 0) or by the serving unit's risk ceiling.
type DeferredPaymentNotAllowedError struct {
	ServingUnit string
	Total       int64
	Ceiling     int64
}

func NewDeferredPaymentNotAllowedError(servingUnit string, total, ceiling int64) *DeferredPaymentNotAllowedError {
	return &DeferredPaymentNotAllowedError{
		ServingUnit: servingUnit,
		Total:       total,
		Ceiling:     ceiling,
	}
}

func (e *DeferredPaymentNotAllowedError) Error() string {
	if e.Ceiling < 0 {
		return fmt.Sprintf("%s: deferred payment is disabled", ErrDeferredPaymentDenied)
	}
	return fmt.Sprintf("%s: total %d exceeds ceiling %d of serving unit %s",
		ErrDeferredPaymentDenied, e.Total, e.Ceiling, e.ServingUnit)
}

func (e *DeferredPaymentNotAllowedError) Unwrap() error {
	return ErrDeferredPaymentDenied
}

// IsRetryable reports whether err is a lost race that a reload may resolve.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSerializationFailure) || errors.Is(err, ErrConcurrentModification)
}

// IsAlreadyExists reports a unique key collision.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}
