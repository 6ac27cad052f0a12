package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID uint      `json:"business" gorm:"not null;index"`
	Business   Business  `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	UserID     uint      `json:"user" gorm:"not null;index"`
	User       User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title      string    `json:"title" gorm:"size:50;not null"`
	Content    string    `json:"content" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5"`
	Likes      int       `json:"likes" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`
}
