package services

import (
	"testing"

	"agroconnect/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// :memory: is unique per connection unless using cache=shared; the shared
	// name keeps one database alive across the handles a test opens.
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FarmerProfile{},
		&models.CompanyProfile{},
		&models.WasteProduct{},
		&models.Order{},
		&models.PriceBargain{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	// Clean all tables, the shared memory DB survives across tests
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM price_bargains")
	db.Exec("DELETE FROM waste_products")
	db.Exec("DELETE FROM farmer_profiles")
	db.Exec("DELETE FROM company_profiles")
	db.Exec("DELETE FROM users")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return &user
}

func createTestListing(t *testing.T, db *gorm.DB, farmerID uint, quantity, adminPrice float64) *models.WasteProduct {
	listing := models.WasteProduct{
		Reference:        uuid.New().String(),
		FarmerID:         farmerID,
		CropType:         models.CropRice,
		Quantity:         decimal.NewFromFloat(quantity),
		AdminPricePerTon: decimal.NewFromFloat(adminPrice),
		Location:         "Test Village",
		Description:      "rice residue",
		Status:           models.ListingAvailable,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("failed to create test listing: %v", err)
	}
	return &listing
}

func reloadListing(t *testing.T, db *gorm.DB, id uint) *models.WasteProduct {
	var listing models.WasteProduct
	if err := db.First(&listing, id).Error; err != nil {
		t.Fatalf("failed to reload listing %d: %v", id, err)
	}
	return &listing
}

func reloadOrder(t *testing.T, db *gorm.DB, id uint) *models.Order {
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		t.Fatalf("failed to reload order %d: %v", id, err)
	}
	return &order
}
