package model

import "time"

// User is an account. Email is the login identity and is stored lower-cased.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FullName     string    `gorm:"size:150;not null" json:"fullname"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthToken is the opaque bearer credential of a user. A user holds at most one.
type AuthToken struct {
	Key       string    `gorm:"column:token;primaryKey;size:40" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
