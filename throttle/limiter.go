// Package throttle counts requests per identity over a sliding window,
// keeping the counters in the relational store.
package throttle

import (
	"context"
	"fmt"
	"time"

	"business-directory-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// slotsPerWindow sets the granularity of the sliding window.
const slotsPerWindow = 60

// Decision is the outcome of one counted request.
type Decision struct {
	Allowed    bool
	Hits       int
	Limit      int
	RetryAfter time.Duration
}

// Limiter allows Limit requests in any Window for each scope and identity.
// Hits are grouped into Slot-sized buckets; a bucket stops counting once
// its start is a full Window old.
type Limiter struct {
	DB     *gorm.DB
	Limit  int
	Window time.Duration
	Slot   time.Duration
	Now    func() time.Time
}

func New(db *gorm.DB, limit int, window time.Duration) *Limiter {
	slot := window / slotsPerWindow
	if slot < time.Second {
		slot = time.Second
	}
	return &Limiter{DB: db, Limit: limit, Window: window, Slot: slot, Now: time.Now}
}

// Allow records one request and reports whether it fits within the limit.
// Rejected requests are not kept, so hammering a limited endpoint does not
// push the reset further out.
func (l *Limiter) Allow(ctx context.Context, scope, identity string) (Decision, error) {
	now := l.Now()
	slot := now.Truncate(l.Slot).Unix()
	horizon := now.Add(-l.Window).Unix()
	d := Decision{Limit: l.Limit}

	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mine := tx.Where("scope = ? AND identity = ?", scope, identity)
		if err := mine.Session(&gorm.Session{}).Where("slot_start <= ?", horizon).
			Delete(&models.ThrottleBucket{}).Error; err != nil {
			return err
		}

		bucket := models.ThrottleBucket{Scope: scope, Identity: identity, SlotStart: slot, Hits: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scope"}, {Name: "identity"}, {Name: "slot_start"}},
			DoUpdates: clause.Assignments(map[string]any{
				"hits": gorm.Expr("throttle_buckets.hits + 1"),
			}),
		}).Create(&bucket).Error
		if err != nil {
			return err
		}

		var live []models.ThrottleBucket
		if err := mine.Session(&gorm.Session{}).Order("slot_start").Find(&live).Error; err != nil {
			return err
		}
		for _, b := range live {
			d.Hits += b.Hits
		}
		if d.Hits <= l.Limit {
			d.Allowed = true
			return nil
		}

		if err := l.undo(tx, scope, identity, slot); err != nil {
			return err
		}
		d.RetryAfter = l.retryAfter(live, slot, now)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("throttle %s/%s: %w", scope, identity, err)
	}
	return d, nil
}

// undo removes the hit just recorded in slot.
func (l *Limiter) undo(tx *gorm.DB, scope, identity string, slot int64) error {
	current := tx.Model(&models.ThrottleBucket{}).
		Where("scope = ? AND identity = ? AND slot_start = ?", scope, identity, slot)
	if err := current.Session(&gorm.Session{}).Update("hits", gorm.Expr("hits - 1")).Error; err != nil {
		return err
	}
	return current.Session(&gorm.Session{}).Where("hits <= 0").Delete(&models.ThrottleBucket{}).Error
}

// retryAfter is the time until enough old hits expire for one more request.
// live includes the rejected hit in slot, which is not kept.
func (l *Limiter) retryAfter(live []models.ThrottleBucket, slot int64, now time.Time) time.Duration {
	kept := -1
	for _, b := range live {
		kept += b.Hits
	}
	need := kept - l.Limit + 1
	expired := 0
	for _, b := range live {
		hits := b.Hits
		if b.SlotStart == slot {
			hits--
		}
		expired += hits
		if expired >= need {
			return time.Unix(b.SlotStart, 0).Add(l.Window).Sub(now)
		}
	}
	return l.Window
}
