package services

import (
	"fmt"

	"agroconnect/internal/models"

	"github.com/shopspring/decimal"
)

// Pricing functions are pure: they operate on entity snapshots and never
// touch the database.

// EffectivePrice resolves the price a listing is valued at: the farmer's
// negotiated price when one exists, the admin price otherwise.
func EffectivePrice(listing *models.WasteProduct) (decimal.Decimal, error) {
	if listing.FarmerPricePerTon != nil && listing.FarmerPricePerTon.GreaterThan(decimal.Zero) {
		return *listing.FarmerPricePerTon, nil
	}
	if listing.AdminPricePerTon.GreaterThan(decimal.Zero) {
		return listing.AdminPricePerTon, nil
	}
	return decimal.Zero, fmt.Errorf("%w: listing %d has no usable price", ErrConflict, listing.ID)
}

// ListingValue returns quantity x effective price for a listing.
func ListingValue(listing *models.WasteProduct) (decimal.Decimal, error) {
	price, err := EffectivePrice(listing)
	if err != nil {
		return decimal.Zero, err
	}
	return listing.Quantity.Mul(price), nil
}

// OrderTotal computes quantity x company price per ton. It is called exactly
// once, at order placement; the stored total is frozen afterwards and must
// never be re-derived from the listing's current prices.
func OrderTotal(quantity, companyPricePerTon decimal.Decimal) decimal.Decimal {
	return quantity.Mul(companyPricePerTon)
}
