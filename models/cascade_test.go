package models_test

import (
	"errors"
	"testing"
	"time"

	"business-directory-api/models"
	"business-directory-api/testutil"

	"gorm.io/gorm"
)

func TestDeleteUserRemovesOwnedData(t *testing.T) {
	db := testutil.NewDB(t)
	owner := models.User{Username: "owner", Location: "A", IsActive: true}
	reader := models.User{Username: "reader", Location: "B", IsActive: true}
	for _, u := range []*models.User{&owner, &reader} {
		if err := db.Create(u).Error; err != nil {
			t.Fatal(err)
		}
	}
	shop := models.Business{Name: "Shop", OwnerID: owner.ID, Address: "x", Phone: "1", Description: "d", Category: models.CategorySalon}
	if err := db.Omit("Owner").Create(&shop).Error; err != nil {
		t.Fatal(err)
	}
	other := models.Business{Name: "Other", OwnerID: reader.ID, Address: "y", Phone: "2", Description: "d", Category: models.CategorySalon}
	if err := db.Omit("Owner").Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	rows := []any{
		&models.Event{BusinessID: shop.ID, Name: "e", Description: "d", StartTime: time.Now(), EndTime: time.Now(), Status: models.EventDraft},
		&models.Review{BusinessID: other.ID, UserID: owner.ID, Title: "t", Content: "c", Rating: 4},
		&models.Review{BusinessID: shop.ID, UserID: reader.ID, Title: "t", Content: "c", Rating: 2},
		&models.Message{BusinessID: other.ID, UserID: reader.ID, Content: "kept"},
	}
	for _, r := range rows {
		if err := db.Omit("Business", "User").Create(r).Error; err != nil {
			t.Fatal(err)
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error { return models.DeleteUser(tx, owner.ID) }); err != nil {
		t.Fatal(err)
	}

	counts := map[string]struct {
		model any
		want  int64
	}{
		"users":      {&models.User{}, 1},
		"businesses": {&models.Business{}, 1},
		"events":     {&models.Event{}, 0},
		"reviews":    {&models.Review{}, 0},
		"messages":   {&models.Message{}, 1},
	}
	for name, c := range counts {
		var n int64
		db.Model(c.model).Count(&n)
		if n != c.want {
			t.Errorf("%s: %d rows, want %d", name, n, c.want)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error { return models.DeleteUser(tx, owner.ID) })
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestRatingCheckConstraint(t *testing.T) {
	db := testutil.NewDB(t)
	u := models.User{Username: "u", Location: "A", IsActive: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	b := models.Business{Name: "B", OwnerID: u.ID, Address: "x", Phone: "3", Description: "d", Category: models.CategoryRestaurant}
	if err := db.Omit("Owner").Create(&b).Error; err != nil {
		t.Fatal(err)
	}

	ok := models.Review{BusinessID: b.ID, UserID: u.ID, Title: "t", Content: "c", Rating: 5}
	if err := db.Omit("Business", "User").Create(&ok).Error; err != nil {
		t.Fatalf("rating 5 rejected: %v", err)
	}

	r := models.Review{BusinessID: b.ID, UserID: u.ID, Title: "t", Content: "c", Rating: 9}
	if err := db.Omit("Business", "User").Create(&r).Error; err == nil {
		t.Error("rating 9 was stored")
	}
}
