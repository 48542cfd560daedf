package postgres

import (
	"errors"

	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// translateError maps transaction aborts the caller may retry onto
// errs.SerializationFailureError. Other errors pass through.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return errs.NewSerializationFailureError(err)
		}
	}
	return err
}

// RegisterErrorTranslation installs callbacks that run translateError on every
// statement error, so repositories report serialization aborts in domain terms
// without knowing the driver.
func RegisterErrorTranslation(db *gorm.DB) error {
	translate := func(tx *gorm.DB) {
		if tx.Error != nil {
			tx.Error = translateError(tx.Error)
		}
	}

	cb := db.Callback()
	const name = "fulfillment:translate_error"
	for _, err := range []error{
		cb.Create().After("gorm:create").Register(name, translate),
		cb.Query().After("gorm:query").Register(name, translate),
		cb.Update().After("gorm:update").Register(name, translate),
		cb.Delete().After("gorm:delete").Register(name, translate),
		cb.Row().After("gorm:row").Register(name, translate),
		cb.Raw().After("gorm:raw").Register(name, translate),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
