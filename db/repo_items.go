package db

import (
	"context"

	"dressrental/dates"
	"dressrental/models"
)

// Items are owned by this registry: callers never write Item.Status
// directly, they go through SetItemStatus / ForceItemStatus.

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &it, nil
}

func (r *Repo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

// SetItemStatus is a compare-and-set: the write only lands if the row
// still holds the status the caller believes it has. Losing the race
// returns ErrStatusConflict, never a silent overwrite.
func (r *Repo) SetItemStatus(ctx context.Context, id string, expected, next models.ItemStatus) (*models.Item, error) {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a lost race from an unknown id.
		if _, err := r.FindItemByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStatusConflict
	}
	return r.FindItemByID(ctx, id)
}

// ForceItemStatus is the manual staff override (maintenance, damaged,
// unlisted). It bypasses conflict checking by design.
func (r *Repo) ForceItemStatus(ctx context.Context, id string, next models.ItemStatus) (*models.Item, error) {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Update("status", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindItemByID(ctx, id)
}

// ItemRentedToday reports whether a live order claims the item today.
func (r *Repo) ItemRentedToday(ctx context.Context, id string) (bool, error) {
	today := dates.Today()
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("item_id = ? AND status IN ? AND delivery_date <= ? AND due_date >= ?",
			id, models.NonTerminalStatuses, today, today).
		Count(&n).Error
	return n > 0, err
}
