package fund

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrFundIsNotConstructed is returned for a Fund that bypassed its constructors.
var ErrFundIsNotConstructed = errors.New("Fund must be created via NewFund constructor")

// InitialVersion is the version of a freshly opened fund.
const InitialVersion = 1

// Fund is the prepaid balance of one client.
//
// Every movement method checks the fund is active, changes the balance,
// bumps the version and returns the Movement to persist with it. The
// repository writes the fund only if the stored version still equals
// BaseVersion.
type Fund struct {
	id        kernel.UUID
	clientID  kernel.UUID
	balance   kernel.Amount
	active    bool
	createdAt time.Time

	version     int
	baseVersion int

	guard guard.ConstructorGuard
}

// NewFund opens an active fund with a zero balance.
func NewFund(id, clientID kernel.UUID, now time.Time) (*Fund, error) {
	f := &Fund{
		active:      true,
		createdAt:   now.UTC(),
		version:     InitialVersion,
		baseVersion: InitialVersion,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(id.Validate(), clientID.Validate()); err != nil {
		return nil, err
	}
	f.id = id
	f.clientID = clientID
	return f, nil
}

func RestoreFund(id, clientID kernel.UUID, balance kernel.Amount, active bool, createdAt time.Time, version int) (*Fund, error) {
	var versionErr error
	if version < InitialVersion {
		versionErr = errs.NewValueIsOutOfRangeError("version", version, InitialVersion, "unbounded")
	}
	if err := errors.Join(id.Validate(), clientID.Validate(), balance.Validate(), versionErr); err != nil {
		return nil, err
	}
	return &Fund{
		id:          id,
		clientID:    clientID,
		balance:     balance,
		active:      active,
		createdAt:   createdAt.UTC(),
		version:     version,
		baseVersion: version,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (f *Fund) Validate() error {
	if f == nil {
		return ErrFundIsNotConstructed
	}
	return f.guard.Validate(ErrFundIsNotConstructed)
}

func (f *Fund) ID() kernel.UUID        { return f.id }
func (f *Fund) ClientID() kernel.UUID  { return f.clientID }
func (f *Fund) Balance() kernel.Amount { return f.balance }
func (f *Fund) IsActive() bool         { return f.active }
func (f *Fund) CreatedAt() time.Time   { return f.createdAt }
func (f *Fund) Version() int           { return f.version }
func (f *Fund) BaseVersion() int       { return f.baseVersion }

// Credit tops the balance up. Manual top-ups may repeat, so there is no
// idempotency key.
func (f *Fund) Credit(amount kernel.Amount, note string, now time.Time) (*Movement, error) {
	if err := f.checkMovement(amount); err != nil {
		return nil, err
	}
	return f.apply(Credit, amount, nil, strings.TrimSpace(note), now)
}

// Debit pays orderID from the balance.
//
// Returns errs.InsufficientBalanceError when the balance is lower than
// amount; the fund is left untouched.
func (f *Fund) Debit(orderID kernel.UUID, amount kernel.Amount, now time.Time) (*Movement, error) {
	if err := errors.Join(orderID.Validate(), f.checkMovement(amount)); err != nil {
		return nil, err
	}
	if f.balance.LessThan(amount) {
		return nil, errs.NewInsufficientBalanceError(f.id.String(), f.balance.Int64(), amount.Int64())
	}
	return f.apply(Debit, amount, &orderID, "", now)
}

// Refund credits back the amount of a prior debit of the same fund.
func (f *Fund) Refund(debit *Movement, now time.Time) (*Movement, error) {
	if debit == nil || debit.Kind() != Debit || debit.OrderID() == nil {
		return nil, errs.NewValueIsRequiredError("debit movement")
	}
	if !debit.FundID().IsEqual(f.id) {
		return nil, errs.NewValueIsInvalidError("debit belongs to another fund")
	}
	if err := f.checkMovement(debit.Amount()); err != nil {
		return nil, err
	}
	return f.apply(Refund, debit.Amount(), debit.OrderID(), "", now)
}

// Close deactivates the fund. Closing twice is a no-op.
func (f *Fund) Close() bool {
	if !f.active {
		return false
	}
	f.active = false
	f.touch()
	return true
}

func (f *Fund) checkMovement(amount kernel.Amount) error {
	if err := amount.ValidatePositive(); err != nil {
		return err
	}
	if !f.active {
		return errs.NewFundClosedError(f.id.String())
	}
	return nil
}

// apply leaves the fund untouched when the new balance would not fit in an
// Amount.
func (f *Fund) apply(kind MovementKind, amount kernel.Amount, orderID *kernel.UUID, note string, now time.Time) (*Movement, error) {
	before := f.balance
	after, err := before.Add(amount)
	if kind == Debit {
		after, err = before.Sub(amount), nil
	}
	if err != nil {
		return nil, err
	}
	f.balance = after
	f.touch()

	return &Movement{
		id:            kernel.NewUUID(),
		fundID:        f.id,
		kind:          kind,
		amount:        amount,
		balanceBefore: before,
		balanceAfter:  f.balance,
		orderID:       cloneID(orderID),
		note:          note,
		createdAt:     now.UTC(),
	}, nil
}

func (f *Fund) touch() {
	if f.version == f.baseVersion {
		f.version++
	}
}
