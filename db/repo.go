package db

import (
	"context"
	"errors"

	"dressrental/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var forUpdate = clause.Locking{Strength: "UPDATE"}

type Repo struct{ DB *gorm.DB }

func NewRepo(conn *gorm.DB) *Repo { return &Repo{DB: conn} }

// lockForUpdate applies a row lock on dialects that support it. sqlite
// (tests) is single-writer and rejects FOR UPDATE.
func (r *Repo) lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(forUpdate)
	}
	return tx
}

// Staff

func (r *Repo) CreateStaff(ctx context.Context, s *models.Staff) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *Repo) FindStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	var s models.Staff
	if err := r.DB.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &s, nil
}

func (r *Repo) FindStaffByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var s models.Staff
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&s).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &s, nil
}

// DeleteStaffByID removes a staff record. Callers revoke the staff
// member's sessions alongside so a deleted account cannot keep acting.
func (r *Repo) DeleteStaffByID(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Staff{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) TouchStaffSeen(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Customers

func (r *Repo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *Repo) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &c, nil
}

// FindOrCreateCustomer backs "customer created on first reservation":
// a match by phone (or email when no phone) reuses the existing row.
func (r *Repo) FindOrCreateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	var existing models.Customer
	q := r.DB.WithContext(ctx)
	switch {
	case c.Phone != "":
		q = q.Where("phone = ?", c.Phone)
	case c.Email != "":
		q = q.Where("email = ?", c.Email)
	default:
		q = q.Where("name = ?", c.Name)
	}
	err := q.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
