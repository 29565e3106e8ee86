package services

import (
	"errors"
	"testing"

	"agroconnect/internal/models"

	"github.com/shopspring/decimal"
)

func TestBargainAccept(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	listing := createTestListing(t, db, farmer.ID, 10, 100)

	bargain, err := service.Create(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(90), "my residue is premium quality")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if bargain.Status != models.BargainPending {
		t.Errorf("expected pending, got %s", bargain.Status)
	}

	bargain, err = service.Respond(
		Identity{UserID: admin.ID, Role: models.RoleAdmin},
		bargain.ID, models.BargainActionAccept, nil, "agreed")
	if err != nil {
		t.Fatalf("Respond accept failed: %v", err)
	}
	if bargain.Status != models.BargainAccepted {
		t.Errorf("expected accepted, got %s", bargain.Status)
	}

	got := reloadListing(t, db, listing.ID)
	if got.FarmerPricePerTon == nil || !got.FarmerPricePerTon.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected farmer price 90 on listing, got %v", got.FarmerPricePerTon)
	}
	// The admin price stays untouched; resolution picks the farmer's value
	if !got.AdminPricePerTon.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected admin price 100 untouched, got %s", got.AdminPricePerTon)
	}
	if price, err := EffectivePrice(got); err != nil || !price.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected effective price 90, got %s (err %v)", price, err)
	}
}

func TestBargainDoubleAcceptConflict(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	listing := createTestListing(t, db, farmer.ID, 10, 100)

	adminID := Identity{UserID: admin.ID, Role: models.RoleAdmin}

	bargain, err := service.Create(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(90), "please")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := service.Respond(adminID, bargain.ID, models.BargainActionAccept, nil, ""); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	_, err = service.Respond(adminID, bargain.ID, models.BargainActionAccept, nil, "")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected conflict on second accept, got %v", err)
	}
}

func TestBargainReject(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	listing := createTestListing(t, db, farmer.ID, 10, 100)

	bargain, err := service.Create(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(150), "worth more")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	bargain, err = service.Respond(
		Identity{UserID: admin.ID, Role: models.RoleAdmin},
		bargain.ID, models.BargainActionReject, nil, "market rate applies")
	if err != nil {
		t.Fatalf("Respond reject failed: %v", err)
	}
	if bargain.Status != models.BargainRejected {
		t.Errorf("expected rejected, got %s", bargain.Status)
	}
	if bargain.AdminMessage != "market rate applies" {
		t.Errorf("expected admin message recorded, got %q", bargain.AdminMessage)
	}

	// Rejection leaves the listing untouched
	if got := reloadListing(t, db, listing.ID); got.FarmerPricePerTon != nil {
		t.Errorf("expected no farmer price on listing, got %v", got.FarmerPricePerTon)
	}
}

func TestBargainCounterStaysPending(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	listing := createTestListing(t, db, farmer.ID, 10, 100)

	adminID := Identity{UserID: admin.ID, Role: models.RoleAdmin}

	bargain, err := service.Create(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(130), "premium")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	counter := decimal.NewFromInt(110)
	bargain, err = service.Respond(adminID, bargain.ID, models.BargainActionCounter, &counter, "best we can do")
	if err != nil {
		t.Fatalf("Respond counter failed: %v", err)
	}
	if bargain.Status != models.BargainPending {
		t.Errorf("expected bargain to stay pending after counter, got %s", bargain.Status)
	}
	if bargain.AdminCounterPrice == nil || !bargain.AdminCounterPrice.Equal(counter) {
		t.Errorf("expected counter price 110 recorded, got %v", bargain.AdminCounterPrice)
	}

	// A counter without a price is invalid
	if _, err := service.Respond(adminID, bargain.ID, models.BargainActionCounter, nil, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for counter without price, got %v", err)
	}
}

func TestBargainOwnershipGuard(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	other := createTestUser(t, db, "farmer2", models.RoleFarmer)
	listing := createTestListing(t, db, farmer.ID, 10, 100)

	_, err := service.Create(
		Identity{UserID: other.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(90), "not mine though")
	if !errors.Is(err, ErrPermission) {
		t.Errorf("expected permission error for foreign listing, got %v", err)
	}

	// Only the admin responds to bargains
	bargain, err := service.Create(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		listing.ID, decimal.NewFromInt(90), "mine")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = service.Respond(
		Identity{UserID: farmer.ID, Role: models.RoleFarmer},
		bargain.ID, models.BargainActionAccept, nil, "")
	if !errors.Is(err, ErrPermission) {
		t.Errorf("expected permission error for farmer responding, got %v", err)
	}
}

func TestBargainListForFarmer(t *testing.T) {
	db := setupTestDB(t)
	service := NewBargainService(db)

	farmer := createTestUser(t, db, "farmer1", models.RoleFarmer)
	other := createTestUser(t, db, "farmer2", models.RoleFarmer)
	listing1 := createTestListing(t, db, farmer.ID, 10, 100)
	listing2 := createTestListing(t, db, other.ID, 20, 80)

	farmerID := Identity{UserID: farmer.ID, Role: models.RoleFarmer}
	otherID := Identity{UserID: other.ID, Role: models.RoleFarmer}

	if _, err := service.Create(farmerID, listing1.ID, decimal.NewFromInt(90), "a"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := service.Create(otherID, listing2.ID, decimal.NewFromInt(70), "b"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	bargains, err := service.ListForFarmer(farmer.ID)
	if err != nil {
		t.Fatalf("ListForFarmer failed: %v", err)
	}
	if len(bargains) != 1 {
		t.Fatalf("expected 1 bargain for farmer, got %d", len(bargains))
	}
	if bargains[0].ListingID != listing1.ID {
		t.Errorf("expected bargain on listing %d, got %d", listing1.ID, bargains[0].ListingID)
	}
}
