package models

// MenuItem is a dish on the menu. Image is the storage key of its
// picture, e.g. "images/pizza.jpg".
type MenuItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	SpecialTag  string  `gorm:"size:100" json:"specialTag"`
	Category    string  `gorm:"size:100" json:"category"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Image       string  `gorm:"size:512;not null" json:"image"`
}
