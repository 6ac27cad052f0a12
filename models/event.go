package models

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

type Event struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	BusinessID  uint        `json:"business" gorm:"not null;index"`
	Business    Business    `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	Name        string      `json:"name" gorm:"size:100;not null"`
	Description string      `json:"description" gorm:"not null"`
	StartTime   time.Time   `json:"start_time" gorm:"not null"`
	EndTime     time.Time   `json:"end_time" gorm:"not null"`
	Status      EventStatus `json:"status" gorm:"size:20;not null;index"`
	Image       *string     `json:"image"`
	Location    *string     `json:"location" gorm:"size:255"`
}
