package models

import "time"

type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BusinessID uint      `json:"business" gorm:"not null;index"`
	Business   Business  `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	UserID     uint      `json:"user" gorm:"not null;index"`
	User       User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content    string    `json:"content" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"autoCreateTime;<-:create"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false"`
}
