package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Username        string     `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Password        string     `json:"-" gorm:"not null"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Location        string     `json:"location" gorm:"size:50;not null"`
	Zipcode         *string    `json:"zipcode" gorm:"size:20"`
	IsBusinessOwner bool       `json:"is_business_owner" gorm:"not null;default:false"`
	Bio             string     `json:"bio"`
	ProfilePicture  string     `json:"profile_picture"`
	IsActive        bool       `json:"is_active" gorm:"not null;default:true"`
	IsStaff         bool       `json:"is_staff" gorm:"not null;default:false"`
	DateJoined      time.Time  `json:"date_joined" gorm:"autoCreateTime;<-:create"`
	LastLogin       *time.Time `json:"last_login"`
}

// SetPassword replaces the stored hash. The plaintext is never kept.
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}
