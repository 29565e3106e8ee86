package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the closed set of marketplace roles
type Role string

const (
	RoleFarmer  Role = "farmer"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known marketplace roles
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	Role         Role      `gorm:"size:10;not null;index" json:"role"`
	Phone        string    `gorm:"size:15" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FarmerProfile holds farmer-specific profile data
type FarmerProfile struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FarmSize  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"farm_size"` // acres
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for FarmerProfile model
func (FarmerProfile) TableName() string {
	return "farmer_profiles"
}

// CompanyProfile holds company-specific profile data
type CompanyProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName        string    `gorm:"size:200;not null" json:"company_name"`
	RegistrationNumber string    `gorm:"size:50;uniqueIndex;not null" json:"registration_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for CompanyProfile model
func (CompanyProfile) TableName() string {
	return "company_profiles"
}

// RegisterFarmerRequest represents a farmer registration request
type RegisterFarmerRequest struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	FarmSize  float64 `json:"farm_size" binding:"required,gt=0"` // acres
}

// RegisterCompanyRequest represents a company registration request
type RegisterCompanyRequest struct {
	Username           string `json:"username" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	FirstName          string `json:"first_name" binding:"required"`
	LastName           string `json:"last_name" binding:"required"`
	Phone              string `json:"phone" binding:"required"`
	Address            string `json:"address" binding:"required"`
	CompanyName        string `json:"company_name" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	FarmSize    *float64 `json:"farm_size"`    // farmers only
	CompanyName *string  `json:"company_name"` // companies only
}

// ProfileResponse bundles a user with their role-specific profile
type ProfileResponse struct {
	User    User            `json:"user"`
	Farmer  *FarmerProfile  `json:"farmer_profile,omitempty"`
	Company *CompanyProfile `json:"company_profile,omitempty"`
}
