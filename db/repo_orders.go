package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dressrental/dates"
	"dressrental/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// firstConflict returns the lowest-id live order on the item whose
// [delivery_date, due_date] overlaps the requested range, or nil.
func firstConflict(tx *gorm.DB, itemID string, from, to time.Time) (*models.Order, error) {
	var o models.Order
	err := tx.Model(&models.Order{}).
		Where("item_id = ? AND status IN ? AND delivery_date <= ? AND due_date >= ?",
			itemID, models.NonTerminalStatuses, dates.Day(to), dates.Day(from)).
		Order("id").
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CheckAvailability is the read-only conflict probe. It is re-run
// under the item lock at order-creation time; callers must not treat
// its answer as a hold.
func (r *Repo) CheckAvailability(ctx context.Context, itemID string, from, to time.Time) (bool, string, error) {
	if dates.Day(from).After(dates.Day(to)) {
		return false, "", ErrInvalidDateRange
	}
	if _, err := r.FindItemByID(ctx, itemID); err != nil {
		return false, "", err
	}
	conflict, err := firstConflict(r.DB.WithContext(ctx), itemID, from, to)
	if err != nil {
		return false, "", err
	}
	if conflict != nil {
		return false, conflict.ID, nil
	}
	return true, "", nil
}

type CreateOrderInput struct {
	ItemID         string
	CustomerID     string
	StaffID        string
	DeliveryDate   time.Time
	DueDate        time.Time
	AdvancePayment decimal.Decimal
	Notes          string
}

// CreateOrder reserves the item for the range: lock the item row,
// re-check for conflicts, insert the pending order and mark the item
// reserved, all inside one transaction so a failure leaves nothing
// half-applied. Two racing calls on the same item serialize on the
// row lock; the loser sees the winner's order and gets ErrSlotUnavailable.
func (r *Repo) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if dates.Day(in.DeliveryDate).After(dates.Day(in.DueDate)) {
		return nil, ErrInvalidDateRange
	}

	var order *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := r.lockForUpdate(tx).First(&it, "id = ?", in.ItemID).Error; err != nil {
			return asNotFound(err)
		}
		if !it.Status.Rentable() {
			return fmt.Errorf("%w: %s", ErrItemNotRentable, it.Status)
		}

		var cust models.Customer
		if err := tx.First(&cust, "id = ?", in.CustomerID).Error; err != nil {
			return asNotFound(err)
		}

		conflict, err := firstConflict(tx, in.ItemID, in.DeliveryDate, in.DueDate)
		if err != nil {
			return err
		}
		if conflict != nil {
			return fmt.Errorf("%w (order %s)", ErrSlotUnavailable, conflict.ID)
		}

		o := &models.Order{
			ID:             uuid.NewString(),
			ItemID:         in.ItemID,
			CustomerID:     in.CustomerID,
			StaffID:        in.StaffID,
			DeliveryDate:   dates.Day(in.DeliveryDate),
			DueDate:        dates.Day(in.DueDate),
			Status:         models.OrderPending,
			AdvancePayment: in.AdvancePayment,
			Notes:          strings.TrimSpace(in.Notes),
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Item{}).
			Where("id = ?", it.ID).
			Updates(map[string]interface{}{
				"status":       models.ItemReserved,
				"rental_count": gorm.Expr("rental_count + 1"),
			}).Error; err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// TransitionOrder drives an order along the lifecycle graph.
// Re-requesting the current status is a no-op, which makes terminal
// transitions idempotent. Terminal transitions require a note and
// release the item unless another live order still claims it for
// today or a future day.
func (r *Repo) TransitionOrder(ctx context.Context, orderID string, next models.OrderStatus, notes string, penalty *decimal.Decimal) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	var order *models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := r.lockForUpdate(tx).First(&o, "id = ?", orderID).Error; err != nil {
			return asNotFound(err)
		}

		if o.Status == next {
			order = &o
			return nil
		}
		if !models.CanTransition(o.Status, next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
		}
		notes = strings.TrimSpace(notes)
		if next.Terminal() && notes == "" {
			return ErrMissingNotes
		}

		o.Status = next
		if notes != "" {
			// Keep the explanation trail across transitions.
			if o.Notes != "" {
				o.Notes += "\n"
			}
			o.Notes += notes
		}
		if next == models.OrderFinished && o.ReturnDate == nil {
			today := dates.Today()
			o.ReturnDate = &today
		}
		if penalty != nil && next.Terminal() {
			o.PenaltyFee = *penalty
		}
		if err := tx.Save(&o).Error; err != nil {
			return err
		}

		if next.Terminal() {
			if err := releaseItemIfFree(tx, o.ItemID, o.ID); err != nil {
				return err
			}
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// releaseItemIfFree flips the item back to available once no other
// live order claims it for today or later. The guarded WHERE keeps
// manual maintenance/damaged/unlisted overrides untouched.
func releaseItemIfFree(tx *gorm.DB, itemID, excludeOrderID string) error {
	var n int64
	if err := tx.Model(&models.Order{}).
		Where("item_id = ? AND id <> ? AND status IN ? AND due_date >= ?",
			itemID, excludeOrderID, models.NonTerminalStatuses, dates.Today()).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return tx.Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, models.ItemReserved).
		Update("status", models.ItemAvailable).Error
}

func (r *Repo) FindOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &o, nil
}

type OrdersQuery struct {
	ItemID     string
	CustomerID string
	Status     string
	From, To   *time.Time // overlap filter on the reserved range
}

func (r *Repo) ListOrders(ctx context.Context, q OrdersQuery) ([]models.Order, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Order{}).Order("created_at DESC")
	if q.ItemID != "" {
		tx = tx.Where("item_id = ?", q.ItemID)
	}
	if q.CustomerID != "" {
		tx = tx.Where("customer_id = ?", q.CustomerID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	// Each bound applies on its own: a half-open window still filters.
	if q.To != nil {
		tx = tx.Where("delivery_date <= ?", dates.Day(*q.To))
	}
	if q.From != nil {
		tx = tx.Where("due_date >= ?", dates.Day(*q.From))
	}
	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
