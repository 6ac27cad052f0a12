package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the kind of business a listing describes.
type Category string

const (
	CategoryRestaurant  Category = "RESTAURANT"
	CategoryBookstore   Category = "BOOKSTORE"
	CategorySalon       Category = "SALON"
	CategorySupermarket Category = "SUPERMARKET"
)

type Business struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	Name           string       `json:"b_name" gorm:"column:b_name;size:50;not null"`
	OwnerID        uint         `json:"owner" gorm:"not null;index"`
	Owner          User         `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Address        string       `json:"address" gorm:"not null"`
	Zipcode        *string      `json:"zipcode" gorm:"size:20"`
	Phone          string       `json:"phone" gorm:"size:12;uniqueIndex;not null"`
	Email          *string      `json:"email" gorm:"size:254"`
	Website        *string      `json:"website" gorm:"size:254"`
	Description    string       `json:"description" gorm:"not null"`
	Category       Category     `json:"category" gorm:"size:50;not null;index"`
	DateRegistered time.Time    `json:"date_registered" gorm:"autoCreateTime;<-:create"`
	Images         string       `json:"images"`
	WorkTime       WorkSchedule `json:"work_time" gorm:"not null"`
}

// BeforeCreate fills in the default weekly schedule when none was given.
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if len(b.WorkTime) == 0 {
		b.WorkTime = DefaultWorkSchedule()
	}
	return nil
}
