package domain

import "time"

// RoleCitizen is the fixed role carried by every citizen account. It is
// disjoint from the staff hierarchy.
const RoleCitizen = "citizen"

// Citizen is a vehicle owner who registers vehicles and purchases stickers.
type Citizen struct {
	ID            string
	Phone         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Email         *string
	NationalID    *string
	Language      string
	LoyaltyPoints int
	CreatedAt     time.Time
}

// FullName concatenates first and last name for display.
func (c *Citizen) FullName() string {
	return c.FirstName + " " + c.LastName
}
