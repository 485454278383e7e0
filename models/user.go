package models

import "time"

// GuestIdentity is the shared identity assigned to requests that carry no
// valid session token. A matching User row is seeded at startup so that cart
// and order foreign keys hold for guests as well.
const GuestIdentity = "guest"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Perms returns the capability claims embedded in this user's session token.
func (u User) Perms() []string {
	if u.Role == RoleAdmin {
		return []string{"products.write", "products.delete"}
	}
	return nil
}
