package models

import "time"

const CustomerTable = "drs_customers"

type CustomerStatus string

const (
	CustomerActive      CustomerStatus = "active"
	CustomerInactive    CustomerStatus = "inactive"
	CustomerBlacklisted CustomerStatus = "blacklisted"
	CustomerFrequent    CustomerStatus = "frequent"
)

// FrequentThreshold is the rental count at which a customer is
// auto-promoted to frequent. blacklisted always wins over promotion.
const FrequentThreshold = 3

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerBlacklisted, CustomerFrequent:
		return true
	}
	return false
}

type Customer struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Phone       string         `gorm:"size:45" json:"phone,omitempty"`
	Email       string         `gorm:"size:255" json:"email,omitempty"`
	DocumentURL string         `gorm:"size:500" json:"documentUrl,omitempty"` // opaque URL from document storage
	Status      CustomerStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Derived on read by counting orders, not persisted.
	RentalCount int64 `gorm:"-" json:"rentalCount"`
}

func (Customer) TableName() string { return CustomerTable }
