package db

import (
	"context"
	"sort"
	"time"

	"dressrental/dates"
	"dressrental/models"
)

type ActivityKind string

const (
	ActivityCreated  ActivityKind = "created"
	ActivityDelivery ActivityKind = "delivery"
	ActivityReturn   ActivityKind = "return"
)

// Activity is a calendar projection of one order event. Derived on
// read, never stored.
type Activity struct {
	OrderID    string             `json:"orderId"`
	Kind       ActivityKind       `json:"kind"`
	ItemID     string             `json:"itemId"`
	CustomerID string             `json:"customerId"`
	Status     models.OrderStatus `json:"status"`
	Day        time.Time          `json:"day"`
}

func toActivities(orders []models.Order, kind ActivityKind, day func(models.Order) time.Time) []Activity {
	out := make([]Activity, 0, len(orders))
	for _, o := range orders {
		out = append(out, Activity{
			OrderID:    o.ID,
			Kind:       kind,
			ItemID:     o.ItemID,
			CustomerID: o.CustomerID,
			Status:     o.Status,
			Day:        dates.Day(day(o)),
		})
	}
	return out
}

// ActivitiesForDay lists everything that touches the given calendar
// day: orders created then, deliveries scheduled then, returns due then.
func (r *Repo) ActivitiesForDay(ctx context.Context, day time.Time) ([]Activity, error) {
	day = dates.Day(day)
	next := dates.AddDays(day, 1)

	var created, deliveries, returns []models.Order
	if err := r.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", day, next).
		Find(&created).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).
		Where("delivery_date = ?", day).
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).
		Where("due_date = ?", day).
		Find(&returns).Error; err != nil {
		return nil, err
	}

	acts := toActivities(created, ActivityCreated, func(o models.Order) time.Time { return o.CreatedAt })
	acts = append(acts, toActivities(deliveries, ActivityDelivery, func(o models.Order) time.Time { return o.DeliveryDate })...)
	acts = append(acts, toActivities(returns, ActivityReturn, func(o models.Order) time.Time { return o.DueDate })...)
	sortActivities(acts)
	return acts, nil
}

// UpcomingWithinDays lists live orders delivering (or due back) within
// [today, today+n].
func (r *Repo) UpcomingWithinDays(ctx context.Context, n int, kind ActivityKind) ([]Activity, error) {
	today := dates.Today()
	until := dates.AddDays(today, n)

	col := "delivery_date"
	if kind == ActivityReturn {
		col = "due_date"
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where(col+" >= ? AND "+col+" <= ? AND status IN ?", today, until, models.NonTerminalStatuses).
		Order(col).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	day := func(o models.Order) time.Time { return o.DeliveryDate }
	if kind == ActivityReturn {
		day = func(o models.Order) time.Time { return o.DueDate }
	}
	acts := toActivities(orders, kind, day)
	sortActivities(acts)
	return acts, nil
}

func sortActivities(acts []Activity) {
	sort.Slice(acts, func(i, j int) bool {
		if !acts[i].Day.Equal(acts[j].Day) {
			return acts[i].Day.Before(acts[j].Day)
		}
		if acts[i].Kind != acts[j].Kind {
			return acts[i].Kind < acts[j].Kind
		}
		return acts[i].OrderID < acts[j].OrderID
	})
}
