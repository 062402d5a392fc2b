package db

import (
	"context"
	"fmt"

	"dressrental/models"
)

// Frequent-customer promotion is a projection over the order set,
// re-evaluated on every read. It never demotes, and blacklisted always
// wins: the guarded UPDATE cannot touch blacklisted (or already
// frequent) rows, so concurrent evaluation is harmless.

func (r *Repo) countRentals(ctx context.Context, customerID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Count(&n).Error
	return n, err
}

func (r *Repo) promoteIfFrequent(ctx context.Context, c *models.Customer) error {
	if c.RentalCount < models.FrequentThreshold {
		return nil
	}
	if c.Status == models.CustomerBlacklisted || c.Status == models.CustomerFrequent {
		return nil
	}
	res := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND status NOT IN ?", c.ID,
			[]models.CustomerStatus{models.CustomerBlacklisted, models.CustomerFrequent}).
		Update("status", models.CustomerFrequent)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		c.Status = models.CustomerFrequent
	}
	return nil
}

// CustomerStatus returns the customer with the classification rule
// applied: a read may promote, it never demotes.
func (r *Repo) CustomerStatus(ctx context.Context, id string) (*models.Customer, error) {
	c, err := r.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RentalCount, err = r.countRentals(ctx, id); err != nil {
		return nil, err
	}
	if err := r.promoteIfFrequent(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	for i := range customers {
		n, err := r.countRentals(ctx, customers[i].ID)
		if err != nil {
			return nil, err
		}
		customers[i].RentalCount = n
		if err := r.promoteIfFrequent(ctx, &customers[i]); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// SetCustomerStatus is the manual staff override, including blacklist
// and a frequent -> active revert. The next read may re-promote if the
// threshold is still met.
func (r *Repo) SetCustomerStatus(ctx context.Context, id string, next models.CustomerStatus) (*models.Customer, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}
	res := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Update("status", next)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindCustomerByID(ctx, id)
}
