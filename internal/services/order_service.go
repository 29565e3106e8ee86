package services

import (
	"errors"
	"fmt"
	"sync"

	"agroconnect/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService runs the order approval state machine. Every transition is a
// single transaction covering the order-status write and any coupled
// listing-status write, so concurrent actors never observe a half-applied
// transition.
type OrderService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder places a company order against an available listing. The listing
// is reserved and the order total is frozen in the same transaction.
func (s *OrderService) PlaceOrder(actor Identity, listingID uint, quantity,
	pricePerTon decimal.Decimal, notes string) (*models.Order, error) {

	if actor.Role != models.RoleCompany {
		return nil, fmt.Errorf("%w: only companies can place orders", ErrPermission)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if pricePerTon.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var listing models.WasteProduct
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
			}
			return err
		}

		if quantity.GreaterThan(listing.Quantity) {
			return fmt.Errorf("%w: quantity exceeds available stock", ErrValidation)
		}
		if listing.Status != models.ListingAvailable {
			return fmt.Errorf("%w: listing is not available", ErrConflict)
		}

		// Reserve with the availability check in the WHERE clause so two
		// competing orders cannot both pass a separate read-then-write.
		res := tx.Model(&models.WasteProduct{}).
			Where("id = ? AND status = ?", listing.ID, models.ListingAvailable).
			Update("status", models.ListingReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: listing was reserved by another order", ErrConflict)
		}

		order = models.Order{
			Reference:          uuid.New().String(),
			CompanyID:          actor.UserID,
			ListingID:          listing.ID,
			QuantityOrdered:    quantity,
			CompanyPricePerTon: pricePerTon,
			TotalPrice:         OrderTotal(quantity, pricePerTon),
			Status:             models.OrderPendingAdmin,
			CompanyNotes:       notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Advance applies one action to an order on behalf of the given actor and
// returns the updated order. Listing-status side effects commit in the same
// transaction as the order-status change.
func (s *OrderService) Advance(actor Identity, orderID uint, action models.OrderAction,
	notes string) (*models.Order, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		var listing models.WasteProduct
		if err := tx.First(&listing, order.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing %d", ErrNotFound, order.ListingID)
			}
			return err
		}

		switch actor.Role {
		case models.RoleFarmer:
			return s.advanceAsFarmer(tx, actor, &order, &listing, action)
		case models.RoleAdmin:
			return s.advanceAsAdmin(tx, &order, &listing, action, notes)
		case models.RoleCompany:
			return fmt.Errorf("%w: companies cannot advance orders", ErrPermission)
		default:
			return fmt.Errorf("%w: unknown role %q", ErrPermission, actor.Role)
		}
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// advanceAsFarmer handles the farmer's accept/reject response. Farmers only
// act on orders for their own listings and only while the order awaits them.
func (s *OrderService) advanceAsFarmer(tx *gorm.DB, actor Identity, order *models.Order,
	listing *models.WasteProduct, action models.OrderAction) error {

	if listing.FarmerID != actor.UserID {
		return fmt.Errorf("%w: you can only respond to orders for your own listings", ErrPermission)
	}
	if order.Status != models.OrderSentToFarmer {
		return fmt.Errorf("%w: this order is not available for response", ErrConflict)
	}

	switch action {
	case models.OrderActionAccept:
		// Listing stays reserved while the admin finishes the approval.
		return s.transition(tx, order, models.OrderAcceptedByFarmer, listing, "")
	case models.OrderActionReject:
		return s.transition(tx, order, models.OrderRejectedByFarmer, listing, models.ListingAvailable)
	default:
		return fmt.Errorf("%w: farmers may only accept or reject", ErrValidation)
	}
}

// advanceAsAdmin handles the admin's two review stages, rejection and
// completion.
func (s *OrderService) advanceAsAdmin(tx *gorm.DB, order *models.Order,
	listing *models.WasteProduct, action models.OrderAction, notes string) error {

	order.AdminNotes = notes

	switch action {
	case models.OrderActionSendToFarmer:
		if order.Status != models.OrderPendingAdmin {
			return fmt.Errorf("%w: order is not pending admin review", ErrConflict)
		}
		return s.transition(tx, order, models.OrderSentToFarmer, listing, "")

	case models.OrderActionFinalApprove:
		if order.Status != models.OrderAcceptedByFarmer {
			return fmt.Errorf("%w: order has not been accepted by the farmer", ErrConflict)
		}
		return s.transition(tx, order, models.OrderApprovedByAdmin, listing, "")

	case models.OrderActionReject:
		if order.Status != models.OrderPendingAdmin && order.Status != models.OrderAcceptedByFarmer {
			return fmt.Errorf("%w: order cannot be rejected in status %s", ErrConflict, order.Status)
		}
		return s.transition(tx, order, models.OrderRejectedByFarmer, listing, models.ListingAvailable)

	case models.OrderActionComplete:
		if order.Status != models.OrderApprovedByAdmin {
			return fmt.Errorf("%w: order has not been finally approved", ErrConflict)
		}
		return s.transition(tx, order, models.OrderCompleted, listing, models.ListingSold)

	default:
		return fmt.Errorf("%w: unknown order action %q", ErrValidation, action)
	}
}

// transition writes the new order status (and notes) and, when listingStatus
// is non-empty, the coupled listing status, all on the caller's transaction.
func (s *OrderService) transition(tx *gorm.DB, order *models.Order, next models.OrderStatus,
	listing *models.WasteProduct, listingStatus models.ListingStatus) error {

	order.Status = next
	if err := tx.Model(order).Updates(map[string]interface{}{
		"status":      order.Status,
		"admin_notes": order.AdminNotes,
	}).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if listingStatus != "" && listing.Status != listingStatus {
		if err := tx.Model(listing).Update("status", listingStatus).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}
		listing.Status = listingStatus
	}
	return nil
}

// Get returns an order by ID with its listing preloaded
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Listing").Preload("Company").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// ListForCompany returns a company's orders, newest first
func (s *OrderService) ListForCompany(companyID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Listing").Where("company_id = ?", companyID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListForFarmer returns orders placed against a farmer's listings, newest first
func (s *OrderService) ListForFarmer(farmerID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Listing").
		Joins("JOIN waste_products ON waste_products.id = orders.listing_id").
		Where("waste_products.farmer_id = ?", farmerID).
		Order("orders.created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns all orders, optionally filtered by status, newest first
func (s *OrderService) ListAll(status models.OrderStatus) ([]models.Order, error) {
	query := s.db.Preload("Listing").Preload("Company")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
