package models

import (
	"fmt"

	"gorm.io/gorm"
)

// DeleteBusiness removes a business and every record that hangs off it.
// Callers pass a transaction so the delete commits or fails as a whole.
func DeleteBusiness(tx *gorm.DB, id uint) error {
	dependents := []any{&Event{}, &Inventory{}, &Review{}, &Message{}, &BusinessImages{}}
	for _, m := range dependents {
		if err := tx.Where("business_id = ?", id).Delete(m).Error; err != nil {
			return fmt.Errorf("delete dependents of business %d: %w", id, err)
		}
	}
	res := tx.Delete(&Business{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete business %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteUser removes a user, the user's reviews and messages, and every
// business the user owns.
func DeleteUser(tx *gorm.DB, id uint) error {
	var owned []uint
	if err := tx.Model(&Business{}).Where("owner_id = ?", id).Pluck("id", &owned).Error; err != nil {
		return fmt.Errorf("list businesses of user %d: %w", id, err)
	}
	for _, bid := range owned {
		if err := DeleteBusiness(tx, bid); err != nil {
			return err
		}
	}
	for _, m := range []any{&Review{}, &Message{}} {
		if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
			return fmt.Errorf("delete records of user %d: %w", id, err)
		}
	}
	res := tx.Delete(&User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// All lists every model for migration, parents before children.
func All() []any {
	return []any{
		&User{},
		&Business{},
		&Event{},
		&Inventory{},
		&Review{},
		&Message{},
		&BusinessImages{},
		&ThrottleBucket{},
	}
}
