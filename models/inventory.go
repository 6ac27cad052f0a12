package models

import (
	"math"
	"time"
)

type Inventory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BusinessID  uint      `json:"business" gorm:"not null;index"`
	Business    Business  `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	ProductName string    `json:"product_name" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"not null"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	DateAdded   time.Time `json:"date_added" gorm:"autoCreateTime;<-:create"`
	Image       string    `json:"image"`
}

// TableName keeps the singular resource name used by the API.
func (Inventory) TableName() string { return "inventory" }

// RoundPrice rounds to the two decimal places the column stores.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
