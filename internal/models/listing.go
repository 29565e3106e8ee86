package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CropType identifies the crop a residue listing comes from
type CropType string

const (
	CropRice      CropType = "rice"
	CropCorn      CropType = "corn"
	CropWheat     CropType = "wheat"
	CropSugarcane CropType = "sugarcane"
	CropCotton    CropType = "cotton"
	CropOther     CropType = "other"
)

// Valid reports whether the crop type is a known one
func (c CropType) Valid() bool {
	switch c {
	case CropRice, CropCorn, CropWheat, CropSugarcane, CropCotton, CropOther:
		return true
	}
	return false
}

// ListingStatus is the lifecycle status of a waste product listing
type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingReserved  ListingStatus = "reserved"
	ListingSold      ListingStatus = "sold"
)

// DefaultAdminPrice is the placeholder price a listing carries until the
// admin prices it.
var DefaultAdminPrice = decimal.NewFromFloat(0.01)

// WasteProduct represents a crop-residue listing offered by a farmer
type WasteProduct struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Reference         string           `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	FarmerID          uint             `gorm:"not null;index" json:"farmer_id"`
	Farmer            *User            `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
	CropType          CropType         `gorm:"size:20;not null;index" json:"crop_type"`
	Quantity          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"quantity"` // tons
	AdminPricePerTon  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"admin_price_per_ton"`
	FarmerPricePerTon *decimal.Decimal `gorm:"type:decimal(12,2)" json:"farmer_price_per_ton,omitempty"`
	Location          string           `gorm:"size:200" json:"location"`
	Description       string           `gorm:"type:text" json:"description"`
	Status            ListingStatus    `gorm:"size:10;not null;default:available;index" json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the table name for WasteProduct model
func (WasteProduct) TableName() string {
	return "waste_products"
}

// CreateListingRequest represents a request to list crop residue
type CreateListingRequest struct {
	CropType    string  `json:"crop_type" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"` // tons
	Location    string  `json:"location" binding:"required"`
	Description string  `json:"description"`
}

// SetListingPriceRequest represents an admin price update for a listing
type SetListingPriceRequest struct {
	PricePerTon float64 `json:"price_per_ton" binding:"required,gt=0"`
}

// CropPrice is the current admin-set market price for a crop type
type CropPrice struct {
	CropType CropType        `json:"crop_type"`
	Price    decimal.Decimal `json:"price"`
}

// ListingOverview aggregates listings for the admin price view
type ListingOverview struct {
	Listings       []WasteProduct  `json:"listings"`
	TotalProducts  int             `json:"total_products"`
	AvailableCount int             `json:"available_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	TotalValue     decimal.Decimal `json:"total_value"`
}
