package services

import (
	"errors"
	"fmt"

	"agroconnect/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListingService struct {
	db *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{db: db}
}

// Create lists crop residue for a farmer. The admin price starts at the
// placeholder value until the admin prices the crop.
func (s *ListingService) Create(farmerID uint, cropType models.CropType, quantity decimal.Decimal,
	location, description string) (*models.WasteProduct, error) {

	if !cropType.Valid() {
		return nil, fmt.Errorf("%w: unknown crop type %q", ErrValidation, cropType)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	listing := models.WasteProduct{
		Reference:        uuid.New().String(),
		FarmerID:         farmerID,
		CropType:         cropType,
		Quantity:         quantity,
		AdminPricePerTon: models.DefaultAdminPrice,
		Location:         location,
		Description:      description,
		Status:           models.ListingAvailable,
	}

	if err := s.db.Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	return &listing, nil
}

// Get returns a listing by ID
func (s *ListingService) Get(listingID uint) (*models.WasteProduct, error) {
	var listing models.WasteProduct
	if err := s.db.Preload("Farmer").First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
		}
		return nil, err
	}
	return &listing, nil
}

// SetAdminPrice sets the admin price per ton for a listing
func (s *ListingService) SetAdminPrice(listingID uint, price decimal.Decimal) (*models.WasteProduct, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	listing, err := s.Get(listingID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(listing).Update("admin_price_per_ton", price).Error; err != nil {
		return nil, fmt.Errorf("failed to update listing price: %w", err)
	}
	listing.AdminPricePerTon = price

	return listing, nil
}

// ListAvailable returns available listings, optionally filtered by crop type.
// Only available listings are offered at order-placement time; this filter is
// what keeps reserved and sold listings out of reach of new orders.
func (s *ListingService) ListAvailable(cropType models.CropType) ([]models.WasteProduct, error) {
	query := s.db.Where("status = ?", models.ListingAvailable)
	if cropType != "" {
		if !cropType.Valid() {
			return nil, fmt.Errorf("%w: unknown crop type %q", ErrValidation, cropType)
		}
		query = query.Where("crop_type = ?", cropType)
	}

	var listings []models.WasteProduct
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListForFarmer returns all listings owned by a farmer, newest first
func (s *ListingService) ListForFarmer(farmerID uint) ([]models.WasteProduct, error) {
	var listings []models.WasteProduct
	if err := s.db.Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// MarketPrices returns the current admin-set price per crop type, taken as
// the highest priced listing of each crop among listings the admin has priced.
func (s *ListingService) MarketPrices() ([]models.CropPrice, error) {
	var prices []models.CropPrice
	err := s.db.Model(&models.WasteProduct{}).
		Select("crop_type, MAX(admin_price_per_ton) AS price").
		Where("admin_price_per_ton > ?", models.DefaultAdminPrice).
		Group("crop_type").
		Order("crop_type").
		Scan(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
