package models

// BusinessImages holds up to four supplementary pictures for a business.
type BusinessImages struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"business" gorm:"not null;index"`
	Business   Business `json:"-" gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	Image1     *string  `json:"image_1" gorm:"column:image_1"`
	Image2     *string  `json:"image_2" gorm:"column:image_2"`
	Image3     *string  `json:"image_3" gorm:"column:image_3"`
	Image4     *string  `json:"image_4" gorm:"column:image_4"`
}

// Slots returns pointers to the four image columns in order.
func (b *BusinessImages) Slots() []**string {
	return []**string{&b.Image1, &b.Image2, &b.Image3, &b.Image4}
}
