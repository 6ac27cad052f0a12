package dto

import "business-directory-api/models"

// The child representations below embed the stored record and add display
// fields read from the preloaded parents.

type EventOut struct {
	models.Event
	BusinessName string `json:"business_name"`
}

func Event(e models.Event) EventOut {
	return EventOut{Event: e, BusinessName: e.Business.Name}
}

type InventoryOut struct {
	models.Inventory
	BusinessName string `json:"business_name"`
}

func Inventory(i models.Inventory) InventoryOut {
	return InventoryOut{Inventory: i, BusinessName: i.Business.Name}
}

type ReviewOut struct {
	models.Review
	UserName     string `json:"user_name"`
	BusinessName string `json:"business_name"`
}

func Review(r models.Review) ReviewOut {
	return ReviewOut{Review: r, UserName: r.User.Username, BusinessName: r.Business.Name}
}

type MessageOut struct {
	models.Message
	UserName     string `json:"user_name"`
	BusinessName string `json:"business_name"`
}

func Message(m models.Message) MessageOut {
	return MessageOut{Message: m, UserName: m.User.Username, BusinessName: m.Business.Name}
}

type BusinessImagesOut struct {
	models.BusinessImages
	BusinessName string `json:"business_name"`
}

func BusinessImages(b models.BusinessImages) BusinessImagesOut {
	return BusinessImagesOut{BusinessImages: b, BusinessName: b.Business.Name}
}

// Map converts a slice, always returning a non-nil result so empty lists
// render as [].
func Map[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	UserID          uint   `json:"userId"`
	Username        string `json:"username"`
	Refresh         string `json:"refresh"`
	Access          string `json:"access"`
	IsBusinessOwner bool   `json:"is_business_owner"`
}
