package dto

import (
	"time"

	"business-directory-api/models"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BusinessInput holds the client-writable business fields. The owner is
// never read from the client.
type BusinessInput struct {
	Name        string               `json:"b_name" form:"b_name" binding:"required,max=50"`
	Address     string               `json:"address" form:"address" binding:"required"`
	Zipcode     string               `json:"zipcode" form:"zipcode" binding:"max=20"`
	Phone       string               `json:"phone" form:"phone" binding:"required,max=12"`
	Email       string               `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Website     string               `json:"website" form:"website" binding:"max=254"`
	Description string               `json:"description" form:"description" binding:"required"`
	Category    string               `json:"category" form:"category" binding:"required,oneof=RESTAURANT BOOKSTORE SALON SUPERMARKET"`
	WorkTime    *models.WorkSchedule `json:"work_time" form:"work_time"`
}

// BusinessInputFrom prefills a partial update. WorkTime stays nil so a sent
// schedule replaces the stored one rather than merging into it.
func BusinessInputFrom(b *models.Business) BusinessInput {
	return BusinessInput{
		Name:        b.Name,
		Address:     b.Address,
		Zipcode:     deref(b.Zipcode),
		Phone:       b.Phone,
		Email:       deref(b.Email),
		Website:     deref(b.Website),
		Description: b.Description,
		Category:    string(b.Category),
	}
}

// Check covers the rules binding tags cannot express.
func (in *BusinessInput) Check() FieldErrors {
	if in.WorkTime != nil {
		if err := in.WorkTime.Validate(); err != nil {
			return Invalid("work_time", err.Error())
		}
	}
	return nil
}

func (in *BusinessInput) ApplyTo(b *models.Business) {
	b.Name = in.Name
	b.Address = in.Address
	b.Zipcode = optional(in.Zipcode)
	b.Phone = in.Phone
	b.Email = optional(in.Email)
	b.Website = optional(in.Website)
	b.Description = in.Description
	b.Category = models.Category(in.Category)
	if in.WorkTime != nil {
		b.WorkTime = *in.WorkTime
	}
}

// UserInput is the general user representation. Staff and active flags are
// never bound from clients.
type UserInput struct {
	Username        string `json:"username" form:"username" binding:"required,max=150"`
	Password        string `json:"password" form:"password"`
	Email           string `json:"email" form:"email" binding:"omitempty,email"`
	FirstName       string `json:"first_name" form:"first_name" binding:"max=150"`
	LastName        string `json:"last_name" form:"last_name" binding:"max=150"`
	Location        string `json:"location" form:"location" binding:"required,max=50"`
	Zipcode         string `json:"zipcode" form:"zipcode" binding:"max=20"`
	IsBusinessOwner bool   `json:"is_business_owner" form:"is_business_owner"`
	Bio             string `json:"bio" form:"bio"`
}

func UserInputFrom(u *models.User) UserInput {
	return UserInput{
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Location:        u.Location,
		Zipcode:         deref(u.Zipcode),
		IsBusinessOwner: u.IsBusinessOwner,
		Bio:             u.Bio,
	}
}

// ApplyTo copies the fields and hashes a supplied password. An empty
// password leaves the stored hash alone.
func (in *UserInput) ApplyTo(u *models.User) error {
	u.Username = in.Username
	u.Email = in.Email
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Location = in.Location
	u.Zipcode = optional(in.Zipcode)
	u.IsBusinessOwner = in.IsBusinessOwner
	u.Bio = in.Bio
	if in.Password != "" {
		return u.SetPassword(in.Password)
	}
	return nil
}

// SignupInput accepts only the fields a new account may set about itself.
type SignupInput struct {
	Username        string `json:"username" form:"username" binding:"required,max=150"`
	Password        string `json:"password" form:"password" binding:"required"`
	Email           string `json:"email" form:"email" binding:"omitempty,email"`
	Location        string `json:"location" form:"location" binding:"required,max=50"`
	Zipcode         string `json:"zipcode" form:"zipcode" binding:"max=20"`
	IsBusinessOwner bool   `json:"is_business_owner" form:"is_business_owner"`
	Bio             string `json:"bio" form:"bio"`
}

func (in *SignupInput) NewUser() (*models.User, error) {
	u := &models.User{
		Username:        in.Username,
		Email:           in.Email,
		Location:        in.Location,
		Zipcode:         optional(in.Zipcode),
		IsBusinessOwner: in.IsBusinessOwner,
		Bio:             in.Bio,
		IsActive:        true,
	}
	if err := u.SetPassword(in.Password); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" form:"refresh" binding:"required"`
}

type EventInput struct {
	Business    uint      `json:"business" form:"business" binding:"required"`
	Name        string    `json:"name" form:"name" binding:"required,max=100"`
	Description string    `json:"description" form:"description" binding:"required"`
	StartTime   time.Time `json:"start_time" form:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" form:"end_time" binding:"required"`
	Status      string    `json:"status" form:"status" binding:"required,oneof=draft published cancelled"`
	Location    string    `json:"location" form:"location" binding:"max=255"`
}

func EventInputFrom(e *models.Event) EventInput {
	return EventInput{
		Business:    e.BusinessID,
		Name:        e.Name,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Status:      string(e.Status),
		Location:    deref(e.Location),
	}
}

func (in *EventInput) ApplyTo(e *models.Event) {
	e.BusinessID = in.Business
	e.Name = in.Name
	e.Description = in.Description
	e.StartTime = in.StartTime
	e.EndTime = in.EndTime
	e.Status = models.EventStatus(in.Status)
	e.Location = optional(in.Location)
}

type InventoryInput struct {
	Business    uint     `json:"business" form:"business" binding:"required"`
	ProductName string   `json:"product_name" form:"product_name" binding:"required,max=50"`
	Description string   `json:"description" form:"description" binding:"required"`
	Quantity    *int     `json:"quantity" form:"quantity" binding:"required"`
	Price       *float64 `json:"price" form:"price" binding:"required,gte=0,lt=100000000"`
}

func InventoryInputFrom(i *models.Inventory) InventoryInput {
	q, p := i.Quantity, i.Price
	return InventoryInput{
		Business:    i.BusinessID,
		ProductName: i.ProductName,
		Description: i.Description,
		Quantity:    &q,
		Price:       &p,
	}
}

func (in *InventoryInput) ApplyTo(i *models.Inventory) {
	i.BusinessID = in.Business
	i.ProductName = in.ProductName
	i.Description = in.Description
	i.Quantity = *in.Quantity
	i.Price = models.RoundPrice(*in.Price)
}

// ReviewInput binds a review. A zero User means the caller.
type ReviewInput struct {
	Business uint   `json:"business" form:"business" binding:"required"`
	User     uint   `json:"user" form:"user"`
	Title    string `json:"title" form:"title" binding:"required,max=50"`
	Content  string `json:"content" form:"content" binding:"required"`
	Rating   int    `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Likes    int    `json:"likes" form:"likes" binding:"min=0"`
}

func ReviewInputFrom(r *models.Review) ReviewInput {
	return ReviewInput{
		Business: r.BusinessID,
		User:     r.UserID,
		Title:    r.Title,
		Content:  r.Content,
		Rating:   r.Rating,
		Likes:    r.Likes,
	}
}

func (in *ReviewInput) ApplyTo(r *models.Review) {
	r.BusinessID = in.Business
	r.UserID = in.User
	r.Title = in.Title
	r.Content = in.Content
	r.Rating = in.Rating
	r.Likes = in.Likes
}

// MessageInput binds a message. A zero User means the caller.
type MessageInput struct {
	Business uint   `json:"business" form:"business" binding:"required"`
	User     uint   `json:"user" form:"user"`
	Content  string `json:"content" form:"content" binding:"required"`
	IsRead   bool   `json:"is_read" form:"is_read"`
}

func MessageInputFrom(m *models.Message) MessageInput {
	return MessageInput{Business: m.BusinessID, User: m.UserID, Content: m.Content, IsRead: m.IsRead}
}

func (in *MessageInput) ApplyTo(m *models.Message) {
	m.BusinessID = in.Business
	m.UserID = in.User
	m.Content = in.Content
	m.IsRead = in.IsRead
}

// BusinessImagesInput names the parent; the images arrive as files.
type BusinessImagesInput struct {
	Business uint `json:"business" form:"business" binding:"required"`
}
