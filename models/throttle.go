package models

// ThrottleBucket counts the requests one identity made in one time slot.
// A limiter window spans many consecutive slots.
type ThrottleBucket struct {
	ID        uint   `gorm:"primaryKey"`
	Scope     string `gorm:"size:32;not null;uniqueIndex:idx_throttle_slot"`
	Identity  string `gorm:"size:128;not null;uniqueIndex:idx_throttle_slot"`
	SlotStart int64  `gorm:"not null;uniqueIndex:idx_throttle_slot"`
	Hits      int    `gorm:"not null;default:0"`
}
