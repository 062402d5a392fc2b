package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderTable = "drs_orders"

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderOnCourse OrderStatus = "on_course"
	OrderFinished OrderStatus = "finished"
	OrderCanceled OrderStatus = "canceled"
)

// NonTerminalStatuses are the statuses that still claim the item's
// availability for the order's date range.
var NonTerminalStatuses = []OrderStatus{OrderPending, OrderOnCourse}

// allowedTransitions is the order state machine as a directed graph.
// Terminal states have no outgoing edges.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderOnCourse, OrderFinished, OrderCanceled},
	OrderOnCourse: {OrderFinished, OrderCanceled},
	OrderFinished: {},
	OrderCanceled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderFinished || s == OrderCanceled
}

// CanTransition reports whether from -> to is a legal edge.
// Same-state is allowed; callers treat it as a no-op.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	ItemID     string `gorm:"type:uuid;index;not null" json:"itemId"`
	CustomerID string `gorm:"type:uuid;index;not null" json:"customerId"`
	StaffID    string `gorm:"type:uuid;not null" json:"staffId"`

	// Reserved range, inclusive on both ends. Calendar dates, no time of day.
	DeliveryDate time.Time  `gorm:"type:date;index;not null" json:"deliveryDate"`
	DueDate      time.Time  `gorm:"type:date;index;not null" json:"dueDate"`
	ReturnDate   *time.Time `gorm:"type:date" json:"returnDate,omitempty"`

	Status         OrderStatus     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AdvancePayment decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"advancePayment"`
	PenaltyFee     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"penaltyFee"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Order) TableName() string { return OrderTable }
