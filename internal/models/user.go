// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'customer';index"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	Address      string     `json:"address,omitempty" gorm:"size:255"`
	City         string     `json:"city,omitempty" gorm:"size:100"`
	State        string     `json:"state,omitempty" gorm:"size:100"`
	Country      string     `json:"country,omitempty" gorm:"size:100"`
	PostalCode   string     `json:"postal_code,omitempty" gorm:"size:20"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Orders           []Order           `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	ResellerListings []ResellerProduct `json:"reseller_listings,omitempty" gorm:"foreignKey:ResellerID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
