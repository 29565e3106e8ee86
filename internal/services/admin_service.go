package services

import (
	"agroconnect/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdminService provides the admin's aggregate views over the marketplace.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// DashboardStats is the admin dashboard snapshot
type DashboardStats struct {
	TotalUsers      int64                 `json:"total_users"`
	TotalFarmers    int64                 `json:"total_farmers"`
	TotalCompanies  int64                 `json:"total_companies"`
	TotalOrders     int64                 `json:"total_orders"`
	TotalListings   int64                 `json:"total_listings"`
	RecentOrders    []models.Order        `json:"recent_orders"`
	RecentListings  []models.WasteProduct `json:"recent_listings"`
	PendingBargains []models.PriceBargain `json:"pending_bargains"`
}

// GetDashboard returns platform counts and recent activity
func (s *AdminService) GetDashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.FarmerProfile{}).Count(&stats.TotalFarmers)
	s.db.Model(&models.CompanyProfile{}).Count(&stats.TotalCompanies)
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.WasteProduct{}).Count(&stats.TotalListings)

	if err := s.db.Preload("Company").Preload("Listing").
		Order("created_at DESC").Limit(5).Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Farmer").
		Order("created_at DESC").Limit(5).Find(&stats.RecentListings).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Listing").
		Where("status = ?", models.BargainPending).
		Order("created_at DESC").Limit(5).Find(&stats.PendingBargains).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetOrderSummary returns per-status order counts and order values
func (s *AdminService) GetOrderSummary() (*models.OrderSummary, error) {
	summary := &models.OrderSummary{}

	s.db.Model(&models.Order{}).Where("status = ?", models.OrderPendingAdmin).
		Count(&summary.PendingAdminCount)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderSentToFarmer).
		Count(&summary.SentToFarmerCount)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderAcceptedByFarmer).
		Count(&summary.AcceptedByFarmerCount)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderCompleted).
		Count(&summary.CompletedCount)

	var err error
	summary.TotalValue, err = s.sumOrderValue(s.db.Model(&models.Order{}))
	if err != nil {
		return nil, err
	}
	summary.CompletedValue, err = s.sumOrderValue(
		s.db.Model(&models.Order{}).Where("status = ?", models.OrderCompleted))
	if err != nil {
		return nil, err
	}
	summary.PendingValue, err = s.sumOrderValue(
		s.db.Model(&models.Order{}).Where("status IN ?", []models.OrderStatus{
			models.OrderPendingAdmin, models.OrderSentToFarmer, models.OrderAcceptedByFarmer,
		}))
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Company").Preload("Listing").
		Where("status IN ?", []models.OrderStatus{models.OrderPendingAdmin, models.OrderAcceptedByFarmer}).
		Order("created_at DESC").Limit(5).Find(&summary.PendingOrders).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *AdminService) sumOrderValue(query *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(total_price), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// GetListingOverview returns listings with crop/status filters and aggregate
// totals for the admin price view. Totals are valued at each listing's
// effective price.
func (s *AdminService) GetListingOverview(cropType models.CropType,
	status models.ListingStatus) (*models.ListingOverview, error) {

	query := s.db.Preload("Farmer").Order("created_at DESC")
	if cropType != "" {
		query = query.Where("crop_type = ?", cropType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var listings []models.WasteProduct
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}

	overview := &models.ListingOverview{
		Listings:      listings,
		TotalProducts: len(listings),
		TotalQuantity: decimal.Zero,
		TotalValue:    decimal.Zero,
	}

	for i := range listings {
		if listings[i].Status == models.ListingAvailable {
			overview.AvailableCount++
		}
		overview.TotalQuantity = overview.TotalQuantity.Add(listings[i].Quantity)
		if value, err := ListingValue(&listings[i]); err == nil {
			overview.TotalValue = overview.TotalValue.Add(value)
		}
	}

	return overview, nil
}
