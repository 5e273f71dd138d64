package models

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	Base

	Username string `gorm:"size:100;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:20;default:'USER';not null" json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
