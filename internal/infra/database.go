package infra

import (
	"fmt"

	"github.com/Legeek117/projet-stock/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the SQL objects GORM cannot
// express (the ticket-number sequences).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.UserPreference{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.StockMovement{},
		&model.PriceHistory{},
		&model.Order{},
		&model.OrderItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches creates the sequences behind order/purchase numbers.
// Every statement is idempotent so startup can run them unconditionally.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS purchase_number_seq START 1`,
	}
	for _, p := range patches {
		if err := db.Exec(p).Error; err != nil {
			return err
		}
	}
	return nil
}
