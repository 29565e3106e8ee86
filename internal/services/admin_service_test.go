package services

import (
	"testing"

	"agroconnect/internal/models"

	"github.com/shopspring/decimal"
)

func TestGetOrderSummary(t *testing.T) {
	db := setupTestDB(t)
	orderService := NewOrderService(db)
	adminService := NewAdminService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	company := createTestUser(t, db, "company1", models.RoleCompany)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	listing1 := createTestListing(t, db, farmer.ID, 10, 100)
	listing2 := createTestListing(t, db, farmer.ID, 20, 80)

	companyID := Identity{UserID: company.ID, Role: models.RoleCompany}
	farmerID := Identity{UserID: farmer.ID, Role: models.RoleFarmer}
	adminID := Identity{UserID: admin.ID, Role: models.RoleAdmin}

	// One order driven to completion (5 x 120 = 600)
	order1, err := orderService.PlaceOrder(companyID, listing1.ID,
		decimal.NewFromInt(5), decimal.NewFromInt(120), "")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	for _, step := range []struct {
		actor  Identity
		action models.OrderAction
	}{
		{adminID, models.OrderActionSendToFarmer},
		{farmerID, models.OrderActionAccept},
		{adminID, models.OrderActionFinalApprove},
		{adminID, models.OrderActionComplete},
	} {
		if _, err := orderService.Advance(step.actor, order1.ID, step.action, ""); err != nil {
			t.Fatalf("advance %s failed: %v", step.action, err)
		}
	}

	// One order left pending (10 x 90 = 900)
	if _, err := orderService.PlaceOrder(companyID, listing2.ID,
		decimal.NewFromInt(10), decimal.NewFromInt(90), ""); err != nil {
		t.Fatalf("second PlaceOrder failed: %v", err)
	}

	summary, err := adminService.GetOrderSummary()
	if err != nil {
		t.Fatalf("GetOrderSummary failed: %v", err)
	}

	if summary.PendingAdminCount != 1 {
		t.Errorf("expected 1 pending_admin order, got %d", summary.PendingAdminCount)
	}
	if summary.CompletedCount != 1 {
		t.Errorf("expected 1 completed order, got %d", summary.CompletedCount)
	}
	if !summary.TotalValue.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected total value 1500, got %s", summary.TotalValue)
	}
	if !summary.CompletedValue.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected completed value 600, got %s", summary.CompletedValue)
	}
	if !summary.PendingValue.Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected pending value 900, got %s", summary.PendingValue)
	}
	if len(summary.PendingOrders) != 1 {
		t.Errorf("expected 1 order needing attention, got %d", len(summary.PendingOrders))
	}
}

func TestGetDashboard(t *testing.T) {
	db := setupTestDB(t)
	userService := NewUserService(db)
	bargainService := NewBargainService(db)
	adminService := NewAdminService(db)

	user, err := userService.RegisterFarmer(farmerRequest("farmer1"))
	if err != nil {
		t.Fatalf("RegisterFarmer failed: %v", err)
	}
	listing := createTestListing(t, db, user.ID, 10, 100)

	if _, err := bargainService.Create(
		Identity{UserID: user.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(90), "pending one"); err != nil {
		t.Fatalf("Create bargain failed: %v", err)
	}

	stats, err := adminService.GetDashboard()
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}

	if stats.TotalUsers != 1 {
		t.Errorf("expected 1 user, got %d", stats.TotalUsers)
	}
	if stats.TotalFarmers != 1 {
		t.Errorf("expected 1 farmer, got %d", stats.TotalFarmers)
	}
	if stats.TotalListings != 1 {
		t.Errorf("expected 1 listing, got %d", stats.TotalListings)
	}
	if len(stats.PendingBargains) != 1 {
		t.Errorf("expected 1 pending bargain, got %d", len(stats.PendingBargains))
	}
}

func TestGetListingOverview(t *testing.T) {
	db := setupTestDB(t)
	adminService := NewAdminService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	createTestListing(t, db, farmer.ID, 10, 100)
	reserved := createTestListing(t, db, farmer.ID, 20, 80)
	db.Model(reserved).Update("status", models.ListingReserved)

	overview, err := adminService.GetListingOverview("", "")
	if err != nil {
		t.Fatalf("GetListingOverview failed: %v", err)
	}

	if overview.TotalProducts != 2 {
		t.Errorf("expected 2 products, got %d", overview.TotalProducts)
	}
	if overview.AvailableCount != 1 {
		t.Errorf("expected 1 available, got %d", overview.AvailableCount)
	}
	if !overview.TotalQuantity.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected total quantity 30, got %s", overview.TotalQuantity)
	}
	// 10*100 + 20*80 valued at effective prices
	if !overview.TotalValue.Equal(decimal.NewFromInt(2600)) {
		t.Errorf("expected total value 2600, got %s", overview.TotalValue)
	}

	// Status filter narrows both the rows and the aggregates
	overview, err = adminService.GetListingOverview("", models.ListingAvailable)
	if err != nil {
		t.Fatalf("GetListingOverview with filter failed: %v", err)
	}
	if overview.TotalProducts != 1 {
		t.Errorf("expected 1 available product, got %d", overview.TotalProducts)
	}
}
