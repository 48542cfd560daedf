// Package storetest opens throwaway SQLite databases carrying the fulfillment
// schema, for repository and scenario tests that need no PostgreSQL.
package storetest

import (
	"testing"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/fundrepo"
	"fulfillment/internal/adapters/out/postgres/kitchenrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/suborderrepo"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table of the schema in dependency order.
func Models() []any {
	return []any{
		&kitchenrepo.KitchenDTO{},
		&kitchenrepo.ServingUnitDTO{},
		&catalogrepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&suborderrepo.SubOrderDTO{},
		&suborderrepo.ItemDTO{},
		&fundrepo.FundDTO{},
		&fundrepo.MovementDTO{},
		&auditrepo.EventDTO{},
	}
}

// NewDB returns an in-memory database migrated with Models. It is closed
// when the test ends.
//
// A ":memory:" database lives and dies with its connection, so the pool is
// pinned to a single one.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err = db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err = postgres.RegisterErrorTranslation(db); err != nil {
		t.Fatalf("Failed to register error translation: %v", err)
	}

	return db
}
