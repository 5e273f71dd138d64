package models

import "github.com/google/uuid"

// Shop is kept as a single row; replacing it wipes the previous one.
type Shop struct {
	Base

	Name        string  `gorm:"size:100;not null" json:"name"`
	Tagline     string  `gorm:"size:255" json:"tagline"`
	Location    string  `gorm:"size:255" json:"location"`
	Description string  `gorm:"type:text" json:"description"`
	Phone       string  `gorm:"size:30" json:"phone"`
	Hours       string  `gorm:"size:255" json:"hours"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	Services []Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
	Reviews  []Review  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews"`
}

type Review struct {
	Base
	ShopID uuid.UUID `gorm:"type:uuid;index;not null" json:"shopId"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Rating  int    `json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`
	Date    string `gorm:"size:50" json:"date"`
}
