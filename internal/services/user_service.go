package services

import (
	"errors"
	"fmt"
	"regexp"

	"agroconnect/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	phoneRe        = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
	registrationRe = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)
)

// UserService handles registration, authentication and profiles.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// RegisterFarmer creates a farmer account. The user row and the farmer
// profile are created in one transaction so a half-registered account can
// never exist.
func (s *UserService) RegisterFarmer(req *models.RegisterFarmerRequest) (*models.User, error) {
	farmSize := decimal.NewFromFloat(req.FarmSize)
	if farmSize.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: farm size must be positive", ErrValidation)
	}

	user, err := s.createUser(req.Username, req.Email, req.Password, req.FirstName,
		req.LastName, req.Phone, req.Address, models.RoleFarmer,
		func(tx *gorm.DB, user *models.User) error {
			profile := models.FarmerProfile{
				UserID:   user.ID,
				FarmSize: farmSize,
			}
			return tx.Create(&profile).Error
		})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// RegisterCompany creates a company account together with its profile.
func (s *UserService) RegisterCompany(req *models.RegisterCompanyRequest) (*models.User, error) {
	if !registrationRe.MatchString(req.RegistrationNumber) {
		return nil, fmt.Errorf("%w: registration number must be 6-20 uppercase alphanumeric characters", ErrValidation)
	}

	var count int64
	s.db.Model(&models.CompanyProfile{}).
		Where("registration_number = ?", req.RegistrationNumber).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("%w: registration number already exists", ErrConflict)
	}

	user, err := s.createUser(req.Username, req.Email, req.Password, req.FirstName,
		req.LastName, req.Phone, req.Address, models.RoleCompany,
		func(tx *gorm.DB, user *models.User) error {
			profile := models.CompanyProfile{
				UserID:             user.ID,
				CompanyName:        req.CompanyName,
				RegistrationNumber: req.RegistrationNumber,
			}
			return tx.Create(&profile).Error
		})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// createUser validates shared fields, hashes the password and creates the
// user plus its role profile atomically.
func (s *UserService) createUser(username, email, password, firstName, lastName,
	phone, address string, role models.Role,
	createProfile func(tx *gorm.DB, user *models.User) error) (*models.User, error) {

	if !phoneRe.MatchString(phone) {
		return nil, fmt.Errorf("%w: phone number must be 10-15 digits, optionally starting with +", ErrValidation)
	}

	var count int64
	s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("%w: username or email already exists", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Phone:        phone,
		Address:      address,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if createProfile != nil {
			if err := createProfile(tx, &user); err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate checks credentials and returns the matching user
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrPermission)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrPermission)
	}

	return &user, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist
func (s *UserService) EnsureAdmin(username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

// GetProfile returns a user with their role-specific profile
func (s *UserService) GetProfile(userID uint) (*models.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	resp := models.ProfileResponse{User: user}

	switch user.Role {
	case models.RoleFarmer:
		var profile models.FarmerProfile
		if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			resp.Farmer = &profile
		}
	case models.RoleCompany:
		var profile models.CompanyProfile
		if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			resp.Company = &profile
		}
	case models.RoleAdmin:
		// Admin accounts carry no role profile.
	}

	return &resp, nil
}

// UpdateProfile updates the user row and the role-specific profile fields in
// one transaction.
func (s *UserService) UpdateProfile(userID uint, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	if req.Phone != "" && !phoneRe.MatchString(req.Phone) {
		return nil, fmt.Errorf("%w: phone number must be 10-15 digits, optionally starting with +", ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if req.FirstName != "" {
			updates["first_name"] = req.FirstName
		}
		if req.LastName != "" {
			updates["last_name"] = req.LastName
		}
		if req.Email != "" {
			updates["email"] = req.Email
		}
		if req.Phone != "" {
			updates["phone"] = req.Phone
		}
		if req.Address != "" {
			updates["address"] = req.Address
		}
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		if user.Role == models.RoleFarmer && req.FarmSize != nil {
			farmSize := decimal.NewFromFloat(*req.FarmSize)
			if farmSize.LessThanOrEqual(decimal.Zero) {
				return fmt.Errorf("%w: farm size must be positive", ErrValidation)
			}
			if err := tx.Model(&models.FarmerProfile{}).
				Where("user_id = ?", userID).
				Update("farm_size", farmSize).Error; err != nil {
				return fmt.Errorf("failed to update farmer profile: %w", err)
			}
		}
		if user.Role == models.RoleCompany && req.CompanyName != nil && *req.CompanyName != "" {
			if err := tx.Model(&models.CompanyProfile{}).
				Where("user_id = ?", userID).
				Update("company_name", *req.CompanyName).Error; err != nil {
				return fmt.Errorf("failed to update company profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(userID)
}
