package services

import (
	"errors"
	"testing"

	"agroconnect/internal/models"
)

func farmerRequest(username string) *models.RegisterFarmerRequest {
	return &models.RegisterFarmerRequest{
		Username:  username,
		Email:     username + "@test.local",
		Password:  "secret-pass-1",
		FirstName: "Test",
		LastName:  "Farmer",
		Phone:     "+1234567890",
		Address:   "Test Village",
		FarmSize:  12.5,
	}
}

func TestRegisterFarmer(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	user, err := service.RegisterFarmer(farmerRequest("farmer1"))
	if err != nil {
		t.Fatalf("RegisterFarmer failed: %v", err)
	}
	if user.Role != models.RoleFarmer {
		t.Errorf("expected role farmer, got %s", user.Role)
	}

	// The role profile is created in the same transaction
	var profile models.FarmerProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("expected farmer profile to exist: %v", err)
	}

	// The password is stored hashed and verifiable
	authed, err := service.Authenticate("farmer1", "secret-pass-1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("expected authenticated user %d, got %d", user.ID, authed.ID)
	}

	if _, err := service.Authenticate("farmer1", "wrong"); !errors.Is(err, ErrPermission) {
		t.Errorf("expected permission error for bad password, got %v", err)
	}
}

func TestRegisterFarmerDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	if _, err := service.RegisterFarmer(farmerRequest("farmer1")); err != nil {
		t.Fatalf("RegisterFarmer failed: %v", err)
	}

	_, err := service.RegisterFarmer(farmerRequest("farmer1"))
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected conflict for duplicate username, got %v", err)
	}
}

func TestRegisterFarmerInvalidPhone(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	req := farmerRequest("farmer1")
	req.Phone = "not-a-phone"

	_, err := service.RegisterFarmer(req)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for bad phone, got %v", err)
	}

	// Nothing half-registered sticks around
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no users, got %d", count)
	}
}

func TestRegisterCompany(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	req := &models.RegisterCompanyRequest{
		Username:           "biofuel",
		Email:              "buyer@test.local",
		Password:           "secret-pass-1",
		FirstName:          "Bio",
		LastName:           "Fuel",
		Phone:              "+1234567890",
		Address:            "Industrial Zone",
		CompanyName:        "BioFuel Ltd",
		RegistrationNumber: "ABC123XYZ",
	}

	user, err := service.RegisterCompany(req)
	if err != nil {
		t.Fatalf("RegisterCompany failed: %v", err)
	}
	if user.Role != models.RoleCompany {
		t.Errorf("expected role company, got %s", user.Role)
	}

	var profile models.CompanyProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("expected company profile to exist: %v", err)
	}
	if profile.RegistrationNumber != "ABC123XYZ" {
		t.Errorf("expected registration number ABC123XYZ, got %s", profile.RegistrationNumber)
	}

	// Registration numbers are lowercase-free and unique
	req.Username = "biofuel2"
	req.Email = "other@test.local"
	if _, err := service.RegisterCompany(req); !errors.Is(err, ErrConflict) {
		t.Errorf("expected conflict for duplicate registration number, got %v", err)
	}

	req.RegistrationNumber = "abc"
	if _, err := service.RegisterCompany(req); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for malformed registration number, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	if err := service.EnsureAdmin("admin", "admin@test.local", "admin-pass-1"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	// Second call is a no-op
	if err := service.EnsureAdmin("admin", "admin@test.local", "admin-pass-1"); err != nil {
		t.Fatalf("EnsureAdmin second call failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 admin, got %d", count)
	}
}
