package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BargainStatus tracks a price negotiation between a farmer and the admin
type BargainStatus string

const (
	BargainPending  BargainStatus = "pending"
	BargainAccepted BargainStatus = "accepted"
	BargainRejected BargainStatus = "rejected"
)

// BargainAction is the admin's response to a pending bargain
type BargainAction string

const (
	BargainActionAccept  BargainAction = "accept"
	BargainActionReject  BargainAction = "reject"
	BargainActionCounter BargainAction = "counter"
)

// PriceBargain represents a farmer-initiated price negotiation on a listing
type PriceBargain struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	Reference           string           `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	ListingID           uint             `gorm:"not null;index" json:"listing_id"`
	Listing             *WasteProduct    `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	FarmerProposedPrice decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"farmer_proposed_price"`
	AdminCounterPrice   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"admin_counter_price,omitempty"`
	FarmerMessage       string           `gorm:"type:text" json:"farmer_message"`
	AdminMessage        string           `gorm:"type:text" json:"admin_message"`
	Status              BargainStatus    `gorm:"size:10;not null;default:pending;index" json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// TableName specifies the table name for PriceBargain model
func (PriceBargain) TableName() string {
	return "price_bargains"
}

// CreateBargainRequest represents a farmer's price proposal on a listing
type CreateBargainRequest struct {
	ListingID     uint    `json:"listing_id" binding:"required"`
	ProposedPrice float64 `json:"proposed_price" binding:"required,gt=0"`
	Message       string  `json:"message" binding:"required"`
}

// RespondBargainRequest represents the admin's response to a bargain
type RespondBargainRequest struct {
	Action       string   `json:"action" binding:"required"`
	CounterPrice *float64 `json:"counter_price"`
	Message      string   `json:"message"`
}
