package user

import "time"

// User owns progress records. ExternalReference is the messaging-platform
// identity (e.g. a Telegram id).
type User struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalReference string `gorm:"column:external_reference;uniqueIndex;not null" json:"external_reference"`
	DisplayName       string `gorm:"column:display_name" json:"display_name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
