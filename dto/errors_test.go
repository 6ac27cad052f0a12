package dto

import (
	"errors"
	"strings"
	"testing"

	"business-directory-api/models"

	"github.com/gin-gonic/gin/binding"
)

func TestFromBindErrorUsesJSONNames(t *testing.T) {
	RegisterValidation()
	in := ReviewInput{Business: 1, Title: strings.Repeat("x", 51), Content: "ok", Rating: 7}
	fe := FromBindError(binding.Validator.ValidateStruct(&in))

	want := map[string]string{
		"title":  "Ensure this field has no more than 50 characters.",
		"rating": "Ensure this value is less than or equal to 5.",
	}
	if len(fe) != len(want) {
		t.Fatalf("errors = %v", fe)
	}
	for field, msg := range want {
		if got := fe[field]; len(got) != 1 || got[0] != msg {
			t.Errorf("%s: %v, want %q", field, got, msg)
		}
	}
}

func TestFromBindErrorChoicesAndRequired(t *testing.T) {
	RegisterValidation()
	in := BusinessInput{Address: "a", Phone: "1", Description: "d", Category: "GARAGE"}
	fe := FromBindError(binding.Validator.ValidateStruct(&in))

	if got := fe["b_name"]; len(got) != 1 || got[0] != msgRequired {
		t.Errorf("b_name: %v", got)
	}
	if got := fe["category"]; len(got) != 1 || got[0] != `"GARAGE" is not a valid choice.` {
		t.Errorf("category: %v", got)
	}
}

func TestFromBindErrorOther(t *testing.T) {
	fe := FromBindError(errors.New("unexpected EOF"))
	if got := fe["non_field_errors"]; len(got) != 1 || got[0] != "unexpected EOF" {
		t.Errorf("errors = %v", fe)
	}
	var target FieldErrors
	if !errors.As(error(fe), &target) {
		t.Error("FieldErrors does not satisfy errors.As")
	}
}

func TestInventoryInputRoundsPrice(t *testing.T) {
	q, p := 3, 4.567
	in := InventoryInput{Business: 2, ProductName: "Tea", Description: "Green", Quantity: &q, Price: &p}
	var item models.Inventory
	in.ApplyTo(&item)
	if item.Price != 4.57 || item.Quantity != 3 || item.BusinessID != 2 {
		t.Errorf("item = %+v", item)
	}

	back := InventoryInputFrom(&item)
	*back.Quantity = 9
	if item.Quantity != 3 {
		t.Error("input aliases the stored quantity")
	}
}

func TestBusinessPrefillLeavesScheduleAlone(t *testing.T) {
	b := models.Business{Name: "Shop", WorkTime: models.DefaultWorkSchedule()}
	in := BusinessInputFrom(&b)
	if in.WorkTime != nil {
		t.Fatal("prefill carries the stored schedule")
	}
	in.ApplyTo(&b)
	if len(b.WorkTime) != 7 {
		t.Errorf("schedule without work_time = %v", b.WorkTime)
	}

	one := models.WorkSchedule{"Friday": {Open: "08:00", Close: "12:00"}}
	in.WorkTime = &one
	in.ApplyTo(&b)
	if len(b.WorkTime) != 1 {
		t.Errorf("schedule after replace = %v", b.WorkTime)
	}
}
