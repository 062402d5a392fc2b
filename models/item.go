package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const ItemTable = "drs_items"

type ItemStatus string

const (
	ItemAvailable   ItemStatus = "available"
	ItemReserved    ItemStatus = "reserved"
	ItemMaintenance ItemStatus = "maintenance"
	ItemDamaged     ItemStatus = "damaged"
	ItemUnlisted    ItemStatus = "unlisted" // soft delete, items are never removed
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemAvailable, ItemReserved, ItemMaintenance, ItemDamaged, ItemUnlisted:
		return true
	}
	return false
}

// Rentable reports whether new orders may be placed against an item
// in this status. reserved still counts: pre-booking a future range
// on an already reserved item is allowed.
func (s ItemStatus) Rentable() bool {
	return s == ItemAvailable || s == ItemReserved
}

type Item struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	RentalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"rentalPrice"`
	Status      ItemStatus      `gorm:"size:20;not null;default:'available';index" json:"status"`
	RentalCount int64           `gorm:"not null;default:0" json:"rentalCount"` // monotonic, bumped on each reservation
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }
