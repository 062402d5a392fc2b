package app

import (
	"context"
	"fmt"
	"time"

	"dressrental/dates"
	"dressrental/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Reconciler is the periodic sweep keeping Item.status honest against
// the live order set. Both statements are single conditional UPDATEs,
// so each run is idempotent and safe alongside live request handling
// (and alongside another concurrently running sweep).
type Reconciler struct {
	DB       *gorm.DB
	Interval time.Duration
}

func (rc *Reconciler) Run(ctx context.Context) {
	t := time.NewTicker(rc.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			rc.sweep(ctx)
		}
	}
}

func (rc *Reconciler) sweep(ctx context.Context) {
	released, err := rc.releaseStranded(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile: release stranded items")
		return
	}
	claimed, err := rc.reclaimLive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile: reclaim live items")
		return
	}
	if released > 0 || claimed > 0 {
		log.Info().Int64("released", released).Int64("reclaimed", claimed).Msg("reconcile sweep")
	}
}

// releaseStranded frees reserved items no live order still claims for
// today or later. Happens when a terminal transition raced the release.
func (rc *Reconciler) releaseStranded(ctx context.Context) (int64, error) {
	res := rc.DB.WithContext(ctx).Exec(fmt.Sprintf(`
	  UPDATE %[1]s SET status = ?
	  WHERE status = ?
	    AND NOT EXISTS (
	      SELECT 1 FROM %[2]s o
	      WHERE o.item_id = %[1]s.id
	        AND o.status IN (?, ?)
	        AND o.due_date >= ?
	    )`, models.ItemTable, models.OrderTable),
		models.ItemAvailable, models.ItemReserved,
		models.OrderPending, models.OrderOnCourse, dates.Today())
	return res.RowsAffected, res.Error
}

// reclaimLive marks items back as reserved when a live order covers
// today or a future day but the row says available.
func (rc *Reconciler) reclaimLive(ctx context.Context) (int64, error) {
	res := rc.DB.WithContext(ctx).Exec(fmt.Sprintf(`
	  UPDATE %[1]s SET status = ?
	  WHERE status = ?
	    AND EXISTS (
	      SELECT 1 FROM %[2]s o
	      WHERE o.item_id = %[1]s.id
	        AND o.status IN (?, ?)
	        AND o.due_date >= ?
	    )`, models.ItemTable, models.OrderTable),
		models.ItemReserved, models.ItemAvailable,
		models.OrderPending, models.OrderOnCourse, dates.Today())
	return res.RowsAffected, res.Error
}
