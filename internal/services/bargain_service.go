package services

import (
	"errors"
	"fmt"

	"agroconnect/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BargainService runs the price negotiation between a farmer and the admin.
type BargainService struct {
	db *gorm.DB
}

func NewBargainService(db *gorm.DB) *BargainService {
	return &BargainService{db: db}
}

// Create opens a bargain: the farmer proposes a price for one of their own
// listings.
func (s *BargainService) Create(actor Identity, listingID uint, proposedPrice decimal.Decimal,
	message string) (*models.PriceBargain, error) {

	if actor.Role != models.RoleFarmer {
		return nil, fmt.Errorf("%w: only farmers can open bargains", ErrPermission)
	}
	if proposedPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: proposed price must be positive", ErrValidation)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: a message is required", ErrValidation)
	}

	var listing models.WasteProduct
	if err := s.db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing %d", ErrNotFound, listingID)
		}
		return nil, err
	}
	if listing.FarmerID != actor.UserID {
		return nil, fmt.Errorf("%w: you can only bargain on your own listings", ErrPermission)
	}

	bargain := models.PriceBargain{
		Reference:           uuid.New().String(),
		ListingID:           listing.ID,
		FarmerProposedPrice: proposedPrice,
		FarmerMessage:       message,
		Status:              models.BargainPending,
	}
	if err := s.db.Create(&bargain).Error; err != nil {
		return nil, fmt.Errorf("failed to create bargain: %w", err)
	}

	return &bargain, nil
}

// Respond applies the admin's response to a pending bargain.
//
// accept  - bargain becomes accepted and the listing's farmer price is set to
//           the proposed price in the same transaction; the admin price stays
//           untouched and the effective price resolves to the farmer's value.
// reject  - bargain becomes rejected; the listing is unaffected.
// counter - the counter price and message are recorded and the bargain stays
//           pending; any follow-up is a new bargain, there is no automated loop.
func (s *BargainService) Respond(actor Identity, bargainID uint, action models.BargainAction,
	counterPrice *decimal.Decimal, message string) (*models.PriceBargain, error) {

	if actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only the admin can respond to bargains", ErrPermission)
	}

	var bargain models.PriceBargain
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bargain, bargainID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bargain %d", ErrNotFound, bargainID)
			}
			return err
		}

		// Terminal bargains take no further responses; a second accept can
		// never re-apply the price change.
		if bargain.Status != models.BargainPending {
			return fmt.Errorf("%w: bargain has already been %s", ErrConflict, bargain.Status)
		}

		switch action {
		case models.BargainActionAccept:
			if err := tx.Model(&models.WasteProduct{}).
				Where("id = ?", bargain.ListingID).
				Update("farmer_price_per_ton", bargain.FarmerProposedPrice).Error; err != nil {
				return fmt.Errorf("failed to update listing price: %w", err)
			}
			bargain.Status = models.BargainAccepted
			bargain.AdminMessage = message
			return tx.Model(&bargain).Updates(map[string]interface{}{
				"status":        bargain.Status,
				"admin_message": bargain.AdminMessage,
			}).Error

		case models.BargainActionReject:
			bargain.Status = models.BargainRejected
			bargain.AdminMessage = message
			return tx.Model(&bargain).Updates(map[string]interface{}{
				"status":        bargain.Status,
				"admin_message": bargain.AdminMessage,
			}).Error

		case models.BargainActionCounter:
			if counterPrice == nil || counterPrice.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("%w: a positive counter price is required", ErrValidation)
			}
			bargain.AdminCounterPrice = counterPrice
			bargain.AdminMessage = message
			return tx.Model(&bargain).Updates(map[string]interface{}{
				"admin_counter_price": bargain.AdminCounterPrice,
				"admin_message":       bargain.AdminMessage,
			}).Error

		default:
			return fmt.Errorf("%w: unknown bargain action %q", ErrValidation, action)
		}
	})
	if err != nil {
		return nil, err
	}

	return &bargain, nil
}

// Get returns a bargain by ID with its listing preloaded
func (s *BargainService) Get(bargainID uint) (*models.PriceBargain, error) {
	var bargain models.PriceBargain
	if err := s.db.Preload("Listing").First(&bargain, bargainID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bargain %d", ErrNotFound, bargainID)
		}
		return nil, err
	}
	return &bargain, nil
}

// ListForFarmer returns bargains on the farmer's listings, newest first
func (s *BargainService) ListForFarmer(farmerID uint) ([]models.PriceBargain, error) {
	var bargains []models.PriceBargain
	if err := s.db.Preload("Listing").
		Joins("JOIN waste_products ON waste_products.id = price_bargains.listing_id").
		Where("waste_products.farmer_id = ?", farmerID).
		Order("price_bargains.created_at DESC").Find(&bargains).Error; err != nil {
		return nil, err
	}
	return bargains, nil
}

// ListAll returns all bargains, optionally filtered by status, newest first
func (s *BargainService) ListAll(status models.BargainStatus) ([]models.PriceBargain, error) {
	query := s.db.Preload("Listing")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bargains []models.PriceBargain
	if err := query.Order("created_at DESC").Find(&bargains).Error; err != nil {
		return nil, err
	}
	return bargains, nil
}
