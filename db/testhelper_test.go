package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dressrental/dates"
	"dressrental/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedItem(t *testing.T, r *Repo) *models.Item {
	t.Helper()
	it := &models.Item{
		ID:          uuid.NewString(),
		Name:        "red gown",
		RentalPrice: decimal.NewFromInt(50),
		Status:      models.ItemAvailable,
	}
	require.NoError(t, r.CreateItem(context.Background(), it))
	return it
}

func seedCustomer(t *testing.T, r *Repo) *models.Customer {
	t.Helper()
	c := &models.Customer{
		ID:     uuid.NewString(),
		Name:   "Maria",
		Phone:  "555-" + uuid.NewString()[:8],
		Status: models.CustomerActive,
	}
	require.NoError(t, r.CreateCustomer(context.Background(), c))
	return c
}

func seedStaff(t *testing.T, r *Repo) *models.Staff {
	t.Helper()
	s := &models.Staff{
		ID:          uuid.NewString(),
		Username:    "clerk-" + uuid.NewString()[:8],
		DisplayName: "Clerk",
	}
	require.NoError(t, r.CreateStaff(context.Background(), s))
	return s
}

// day returns today+offset, so test ranges always sit in the future
// relative to the release logic's "now or future" check.
func day(offset int) time.Time { return dates.AddDays(dates.Today(), offset) }

func mustCreateOrder(t *testing.T, r *Repo, itemID, custID, staffID string, from, to time.Time) *models.Order {
	t.Helper()
	o, err := r.CreateOrder(context.Background(), CreateOrderInput{
		ItemID:       itemID,
		CustomerID:   custID,
		StaffID:      staffID,
		DeliveryDate: from,
		DueDate:      to,
	})
	require.NoError(t, err)
	return o
}
