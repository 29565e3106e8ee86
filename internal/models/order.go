package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through the multi-party approval chain
type OrderStatus string

const (
	OrderPendingAdmin     OrderStatus = "pending_admin"
	OrderSentToFarmer     OrderStatus = "sent_to_farmer"
	OrderAcceptedByFarmer OrderStatus = "accepted_by_farmer"
	OrderRejectedByFarmer OrderStatus = "rejected_by_farmer"
	OrderApprovedByAdmin  OrderStatus = "approved_by_admin"
	OrderCompleted        OrderStatus = "completed"
)

// Terminal reports whether no further transitions are possible
func (s OrderStatus) Terminal() bool {
	return s == OrderRejectedByFarmer || s == OrderCompleted
}

// OrderAction is an action that advances an order through the approval chain
type OrderAction string

const (
	// Farmer actions, valid only while the order is sent_to_farmer
	OrderActionAccept OrderAction = "accept"
	OrderActionReject OrderAction = "reject"

	// Admin actions
	OrderActionSendToFarmer OrderAction = "send_to_farmer"
	OrderActionFinalApprove OrderAction = "final_approve"
	OrderActionComplete     OrderAction = "complete"
)

// Order represents a company's purchase order against a listing
type Order struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Reference          string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	CompanyID          uint            `gorm:"not null;index" json:"company_id"`
	Company            *User           `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	ListingID          uint            `gorm:"not null;index" json:"listing_id"`
	Listing            *WasteProduct   `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	QuantityOrdered    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity_ordered"` // tons
	CompanyPricePerTon decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"company_price_per_ton"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"` // frozen at placement
	Status             OrderStatus     `gorm:"size:20;not null;default:pending_admin;index" json:"status"`
	CompanyNotes       string          `gorm:"type:text" json:"company_notes"`
	AdminNotes         string          `gorm:"type:text" json:"admin_notes"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// PlaceOrderRequest represents a company's request to order against a listing
type PlaceOrderRequest struct {
	ListingID   uint    `json:"listing_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"` // tons
	PricePerTon float64 `json:"price_per_ton" binding:"required,gt=0"`
	Notes       string  `json:"notes"`
}

// AdvanceOrderRequest represents an action advancing an order's status
type AdvanceOrderRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

// OrderSummary aggregates orders for the admin summary view
type OrderSummary struct {
	PendingAdminCount     int64           `json:"pending_admin_count"`
	SentToFarmerCount     int64           `json:"sent_to_farmer_count"`
	AcceptedByFarmerCount int64           `json:"accepted_by_farmer_count"`
	CompletedCount        int64           `json:"completed_count"`
	TotalValue            decimal.Decimal `json:"total_value"`
	CompletedValue        decimal.Decimal `json:"completed_value"`
	PendingValue          decimal.Decimal `json:"pending_value"`
	PendingOrders         []Order         `json:"pending_orders"`
}
